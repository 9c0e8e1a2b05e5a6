// Package journal provides access to the append-only memo journal.
// The journal lives either in the upstream journal service (Client) or
// in a local database (repository.Repository); both satisfy Store.
package journal

import (
	"context"

	"github.com/cympfh/shanghai/internal/model"
)

// Store is an append-only journal backend.
type Store interface {
	// Fetch returns every entry in append order. Entry IDs are
	// zero-based positions.
	Fetch(ctx context.Context) ([]model.Entry, error)

	// Append adds a memo to the end of the journal.
	Append(ctx context.Context, memo model.Memo) error

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error
}

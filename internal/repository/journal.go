package repository

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/oklog/ulid/v2"

	"github.com/cympfh/shanghai/internal/model"
)

// Common errors for journal store operations.
var (
	ErrDuplicateEntry = errors.New("journal entry already exists")
)

// Fetch returns every journal entry in append order. Entry IDs are
// zero-based positions over the insertion order, matching the upstream
// journal's array-index addressing.
func (r *Repository) Fetch(ctx context.Context) ([]model.Entry, error) {
	query := `
		SELECT memo_type, from_account, to_account, recipients, amount, cancel_id, note
		FROM journal_entries
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		var (
			memoType    string
			fromAccount *string
			toAccount   *string
			recipients  []string
			amount      *float64
			cancelID    *int
			note        *string
		)

		if err := rows.Scan(&memoType, &fromAccount, &toAccount, pq.Array(&recipients), &amount, &cancelID, &note); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}

		memo := model.Memo{
			Type:     model.MemoType(memoType),
			Amount:   amount,
			CancelID: cancelID,
		}
		if fromAccount != nil {
			memo.FromAccount = *fromAccount
		}
		if toAccount != nil {
			memo.ToAccount = *toAccount
		}
		if note != nil {
			memo.Note = *note
		}

		entries = append(entries, model.Entry{ID: len(entries), Memo: memo})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal entries: %w", err)
	}

	return entries, nil
}

// Append inserts a memo at the end of the journal.
func (r *Repository) Append(ctx context.Context, memo model.Memo) error {
	query := `
		INSERT INTO journal_entries (uid, memo_type, from_account, to_account, recipients, amount, cancel_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		newEntryUID(),
		string(memo.Type),
		nullableString(memo.FromAccount),
		nullableString(memo.ToAccount),
		pq.Array(memo.Recipients()),
		memo.Amount,
		memo.CancelID,
		nullableString(memo.Note),
		time.Now().UTC(),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("failed to append journal entry: %w", err)
	}

	return nil
}

// newEntryUID generates a ULID for a journal row. The UID is not the
// entry's position; it exists for replication and audit queries.
func newEntryUID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	// PostgreSQL error code 23505 is unique_violation
	return err != nil && (strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "unique"))
}

// Package ledger provides business logic over the memo journal:
// posting memos, cancellation accounting, spend totals and settlement.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cympfh/shanghai/internal/cache"
	"github.com/cympfh/shanghai/internal/journal"
	"github.com/cympfh/shanghai/internal/metrics"
	"github.com/cympfh/shanghai/internal/model"
)

// Service errors.
var (
	ErrInvalidMemo = errors.New("invalid memo")
)

// Service handles ledger business logic. The cache is optional; without
// it every read hits the journal store directly.
type Service struct {
	store    journal.Store
	cache    *cache.Cache
	section  string
	cacheTTL time.Duration
	accounts []string
	metrics  metrics.Recorder
}

// NewService creates a new ledger Service.
// accounts lists the household members; the first two participate in
// settlement. cacheClient may be nil.
func NewService(store journal.Store, cacheClient *cache.Cache, section string, cacheTTL time.Duration, accounts []string, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Service{
		store:    store,
		cache:    cacheClient,
		section:  section,
		cacheTTL: cacheTTL,
		accounts: accounts,
		metrics:  recorder,
	}
}

// Accounts returns the configured household accounts.
func (s *Service) Accounts() []string {
	return s.accounts
}

// Entries returns all journal entries, reading through the cache when
// one is configured.
func (s *Service) Entries(ctx context.Context) ([]model.Entry, error) {
	if s.cache != nil {
		entries, err := s.cache.GetJournal(ctx, s.section)
		if err == nil {
			s.metrics.IncJournalCacheHit()
			return entries, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			// Degraded cache is not fatal; fall through to the store.
			s.metrics.IncJournalFetchError()
		}
		s.metrics.IncJournalCacheMiss()
	}

	start := time.Now()
	entries, err := s.store.Fetch(ctx)
	if err != nil {
		s.metrics.IncJournalFetchError()
		return nil, fmt.Errorf("fetch journal: %w", err)
	}
	s.metrics.ObserveFetchDuration(time.Since(start))

	if s.cache != nil {
		// Best effort; a failed cache write only costs the next read.
		_ = s.cache.SetJournal(ctx, s.section, entries, s.cacheTTL)
	}

	return entries, nil
}

// PostInput defines input for posting a memo.
type PostInput struct {
	Type        model.MemoType
	FromAccount string
	ToAccounts  []string
	Amount      *float64
	CancelID    *int
	Note        string
}

// Post validates and appends a memo to the journal.
func (s *Service) Post(ctx context.Context, input PostInput) (model.Memo, error) {
	memo := model.Memo{
		Type:        input.Type,
		FromAccount: input.FromAccount,
		ToAccount:   strings.Join(input.ToAccounts, ","),
		Amount:      input.Amount,
		CancelID:    input.CancelID,
		Note:        input.Note,
	}

	if err := memo.Validate(); err != nil {
		s.metrics.IncMemoRejected()
		return model.Memo{}, fmt.Errorf("%w: %w", ErrInvalidMemo, err)
	}

	if err := s.store.Append(ctx, memo); err != nil {
		return model.Memo{}, fmt.Errorf("append memo: %w", err)
	}

	s.metrics.IncMemoPosted(string(memo.Type))

	if s.cache != nil {
		if err := s.cache.InvalidateJournal(ctx, s.section); err == nil {
			s.metrics.IncCacheInvalidation()
		}
	}

	return memo, nil
}

// History returns displayable entries newest-first: canceled entries and
// the cancel memos themselves are excluded.
func (s *Service) History(ctx context.Context) ([]model.Entry, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}

	canceled := CanceledSet(entries)

	history := make([]model.Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if canceled[entry.ID] || entry.IsCancel() {
			continue
		}
		history = append(history, entry)
	}

	return history, nil
}

// CanceledSet collects the positions voided by cancel memos.
func CanceledSet(entries []model.Entry) map[int]bool {
	canceled := make(map[int]bool)
	for _, entry := range entries {
		if entry.IsCancel() && entry.Memo.CancelID != nil {
			canceled[*entry.Memo.CancelID] = true
		}
	}
	return canceled
}

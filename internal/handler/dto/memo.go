// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/cympfh/shanghai/internal/ledger"
	"github.com/cympfh/shanghai/internal/model"
)

// CreateMemoRequest represents the request body for posting a memo.
// to_account carries the comma-joined recipient list, matching the
// upstream journal wire format.
type CreateMemoRequest struct {
	MemoType    string   `json:"memo_type"`
	FromAccount string   `json:"from_account,omitempty"`
	ToAccount   string   `json:"to_account,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	CancelID    *int     `json:"cancel_id,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// EntryResponse represents a journal entry in API responses.
type EntryResponse struct {
	ID          int      `json:"id"`
	MemoType    string   `json:"memo_type"`
	FromAccount string   `json:"from_account,omitempty"`
	ToAccount   string   `json:"to_account,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	CancelID    *int     `json:"cancel_id,omitempty"`
	Note        string   `json:"note,omitempty"`
	Canceled    bool     `json:"canceled"`
}

// EntryListResponse represents the journal entry listing.
type EntryListResponse struct {
	Data []EntryResponse `json:"data"`
}

// MemoResponse represents a freshly posted memo.
type MemoResponse struct {
	MemoType    string   `json:"memo_type"`
	FromAccount string   `json:"from_account,omitempty"`
	ToAccount   string   `json:"to_account,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	CancelID    *int     `json:"cancel_id,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// SummaryResponse represents totals and settlement.
type SummaryResponse struct {
	Totals     []ledger.AccountTotal `json:"totals"`
	Settlement *ledger.Settlement    `json:"settlement,omitempty"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToEntryResponse converts an Entry to its API shape.
func ToEntryResponse(entry model.Entry, canceled bool) EntryResponse {
	return EntryResponse{
		ID:          entry.ID,
		MemoType:    string(entry.Memo.Type),
		FromAccount: entry.Memo.FromAccount,
		ToAccount:   entry.Memo.ToAccount,
		Amount:      entry.Memo.Amount,
		CancelID:    entry.Memo.CancelID,
		Note:        entry.Memo.Note,
		Canceled:    canceled,
	}
}

// ToEntryListResponse converts entries with their cancellation flags.
func ToEntryListResponse(entries []model.Entry, canceled map[int]bool) EntryListResponse {
	responses := make([]EntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ToEntryResponse(entry, canceled[entry.ID])
	}
	return EntryListResponse{Data: responses}
}

// ToMemoResponse converts a posted memo to its API shape.
func ToMemoResponse(memo model.Memo) MemoResponse {
	return MemoResponse{
		MemoType:    string(memo.Type),
		FromAccount: memo.FromAccount,
		ToAccount:   memo.ToAccount,
		Amount:      memo.Amount,
		CancelID:    memo.CancelID,
		Note:        memo.Note,
	}
}

// ToSummaryResponse converts a ledger summary to its API shape.
func ToSummaryResponse(summary *ledger.Summary) SummaryResponse {
	return SummaryResponse{
		Totals:     summary.Totals,
		Settlement: summary.Settlement,
	}
}

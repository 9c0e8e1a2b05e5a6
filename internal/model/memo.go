// Package model defines domain entities for the application.
package model

import (
	"errors"
	"strings"
)

// MemoType identifies the kind of journal memo.
type MemoType string

const (
	MemoTypePayment MemoType = "Payment"
	MemoTypeCancel  MemoType = "Cancel"
	MemoTypeNote    MemoType = "Note"
)

// IsValid checks if the memo type is one of the known kinds.
func (t MemoType) IsValid() bool {
	return t == MemoTypePayment || t == MemoTypeCancel || t == MemoTypeNote
}

// Validation errors.
var (
	ErrInvalidMemoType  = errors.New("invalid memo type")
	ErrMissingAccounts  = errors.New("payment memo requires from_account and to_account")
	ErrNegativeAmount   = errors.New("payment amount must not be negative")
	ErrMissingCancelID  = errors.New("cancel memo requires cancel_id")
	ErrNegativeCancelID = errors.New("cancel_id must not be negative")
	ErrMissingNote      = errors.New("note memo requires note")
)

// Memo is a single journal record. Field presence depends on Type:
// payments carry accounts and an amount, cancels carry the position of
// the entry they void, notes carry free text. The JSON tags are the
// upstream journal wire names and must not change.
type Memo struct {
	Type        MemoType `json:"memo_type"`
	FromAccount string   `json:"from_account,omitempty"`
	ToAccount   string   `json:"to_account,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	CancelID    *int     `json:"cancel_id,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// Validate checks the per-type field requirements.
func (m *Memo) Validate() error {
	switch m.Type {
	case MemoTypePayment:
		if m.FromAccount == "" || m.ToAccount == "" {
			return ErrMissingAccounts
		}
		if m.Amount != nil && *m.Amount < 0 {
			return ErrNegativeAmount
		}
	case MemoTypeCancel:
		if m.CancelID == nil {
			return ErrMissingCancelID
		}
		if *m.CancelID < 0 {
			return ErrNegativeCancelID
		}
	case MemoTypeNote:
		if m.Note == "" {
			return ErrMissingNote
		}
	default:
		return ErrInvalidMemoType
	}
	return nil
}

// AmountValue returns the payment amount, or zero when unset.
func (m *Memo) AmountValue() float64 {
	if m.Amount == nil {
		return 0
	}
	return *m.Amount
}

// Recipients splits the comma-joined to_account field into trimmed
// account names. Empty segments are dropped.
func (m *Memo) Recipients() []string {
	if m.ToAccount == "" {
		return nil
	}
	parts := strings.Split(m.ToAccount, ",")
	accounts := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			accounts = append(accounts, trimmed)
		}
	}
	return accounts
}

// Entry is a memo together with its journal position. Positions are
// zero-based and assigned by append order; cancel memos reference them.
type Entry struct {
	ID   int  `json:"id"`
	Memo Memo `json:"memo"`
}

// IsCancel reports whether the entry voids another entry.
func (e *Entry) IsCancel() bool {
	return e.Memo.Type == MemoTypeCancel
}

package model

import (
	"encoding/json"
	"fmt"
)

// JournalItem is the upstream journal's envelope for a single entry:
// a GET on the journal returns a JSON array of these.
type JournalItem struct {
	Data json.RawMessage `json:"data"`
}

// DecodeJournal converts the upstream item array into positioned entries.
// Positions are array indexes, matching how cancel memos address entries.
func DecodeJournal(body []byte) ([]Entry, error) {
	var items []JournalItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode journal body: %w", err)
	}

	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		var memo Memo
		if err := json.Unmarshal(item.Data, &memo); err != nil {
			return nil, fmt.Errorf("decode journal item %d: %w", i, err)
		}
		entries = append(entries, Entry{ID: i, Memo: memo})
	}
	return entries, nil
}

// wireMemo is the full upstream memo dict. The upstream store round-trips
// every field, nulls included, so the POST body writes all of them.
type wireMemo struct {
	MemoType    string   `json:"memo_type"`
	FromAccount *string  `json:"from_account"`
	ToAccount   *string  `json:"to_account"`
	Amount      *float64 `json:"amount"`
	CancelID    *int     `json:"cancel_id"`
	Note        *string  `json:"note"`
}

// EncodeMemo serializes a memo as the upstream POST body.
func EncodeMemo(m Memo) ([]byte, error) {
	wire := wireMemo{
		MemoType: string(m.Type),
		Amount:   m.Amount,
		CancelID: m.CancelID,
	}
	if m.FromAccount != "" {
		wire.FromAccount = &m.FromAccount
	}
	if m.ToAccount != "" {
		wire.ToAccount = &m.ToAccount
	}
	if m.Note != "" {
		wire.Note = &m.Note
	}

	body, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode memo: %w", err)
	}
	return body, nil
}

package model

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestMemo_Validate_Payment(t *testing.T) {
	memo := Memo{
		Type:        MemoTypePayment,
		FromAccount: "神楽",
		ToAccount:   "枚方",
		Amount:      floatPtr(120),
	}

	if err := memo.Validate(); err != nil {
		t.Errorf("expected valid payment, got %v", err)
	}
}

func TestMemo_Validate_PaymentMissingAccounts(t *testing.T) {
	tests := []struct {
		name string
		memo Memo
	}{
		{"no from", Memo{Type: MemoTypePayment, ToAccount: "枚方"}},
		{"no to", Memo{Type: MemoTypePayment, FromAccount: "神楽"}},
		{"neither", Memo{Type: MemoTypePayment}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.memo.Validate(); !errors.Is(err, ErrMissingAccounts) {
				t.Errorf("expected ErrMissingAccounts, got %v", err)
			}
		})
	}
}

func TestMemo_Validate_NegativeAmount(t *testing.T) {
	memo := Memo{
		Type:        MemoTypePayment,
		FromAccount: "神楽",
		ToAccount:   "枚方",
		Amount:      floatPtr(-5),
	}

	if err := memo.Validate(); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestMemo_Validate_Cancel(t *testing.T) {
	if err := (&Memo{Type: MemoTypeCancel, CancelID: intPtr(3)}).Validate(); err != nil {
		t.Errorf("expected valid cancel, got %v", err)
	}

	if err := (&Memo{Type: MemoTypeCancel}).Validate(); !errors.Is(err, ErrMissingCancelID) {
		t.Errorf("expected ErrMissingCancelID, got %v", err)
	}

	if err := (&Memo{Type: MemoTypeCancel, CancelID: intPtr(-1)}).Validate(); !errors.Is(err, ErrNegativeCancelID) {
		t.Errorf("expected ErrNegativeCancelID, got %v", err)
	}
}

func TestMemo_Validate_Note(t *testing.T) {
	if err := (&Memo{Type: MemoTypeNote, Note: "電気代は来月から口座引き落とし"}).Validate(); err != nil {
		t.Errorf("expected valid note, got %v", err)
	}

	if err := (&Memo{Type: MemoTypeNote}).Validate(); !errors.Is(err, ErrMissingNote) {
		t.Errorf("expected ErrMissingNote, got %v", err)
	}
}

func TestMemo_Validate_UnknownType(t *testing.T) {
	if err := (&Memo{Type: "Refund"}).Validate(); !errors.Is(err, ErrInvalidMemoType) {
		t.Errorf("expected ErrInvalidMemoType, got %v", err)
	}
}

func TestMemo_Recipients(t *testing.T) {
	tests := []struct {
		name      string
		toAccount string
		want      []string
	}{
		{"single", "枚方", []string{"枚方"}},
		{"multi", "神楽,枚方", []string{"神楽", "枚方"}},
		{"spaces trimmed", " 神楽 , 枚方 ", []string{"神楽", "枚方"}},
		{"empty segments dropped", "神楽,,枚方,", []string{"神楽", "枚方"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memo := Memo{Type: MemoTypePayment, ToAccount: tt.toAccount}
			if got := memo.Recipients(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recipients() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeJournal(t *testing.T) {
	body := []byte(`[
		{"data": {"memo_type": "Payment", "from_account": "神楽", "to_account": "神楽,枚方", "amount": 88.5, "cancel_id": null, "note": null}},
		{"data": {"memo_type": "Cancel", "from_account": null, "to_account": null, "amount": null, "cancel_id": 0, "note": "重複"}},
		{"data": {"memo_type": "Note", "note": "家賃は固定"}}
	]`)

	entries, err := DecodeJournal(body)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].ID != 0 || entries[2].ID != 2 {
		t.Errorf("entry IDs must follow array order, got %d and %d", entries[0].ID, entries[2].ID)
	}

	first := entries[0].Memo
	if first.Type != MemoTypePayment || first.FromAccount != "神楽" || first.AmountValue() != 88.5 {
		t.Errorf("unexpected first memo: %+v", first)
	}

	second := entries[1].Memo
	if !entries[1].IsCancel() || second.CancelID == nil || *second.CancelID != 0 {
		t.Errorf("unexpected cancel memo: %+v", second)
	}
}

func TestDecodeJournal_Malformed(t *testing.T) {
	if _, err := DecodeJournal([]byte(`{"not": "an array"}`)); err == nil {
		t.Error("expected error for non-array body")
	}

	if _, err := DecodeJournal([]byte(`[{"data": {"memo_type": 42}}]`)); err == nil {
		t.Error("expected error for malformed item")
	}
}

func TestEncodeMemo_AllFieldsPresent(t *testing.T) {
	memo := Memo{
		Type:        MemoTypePayment,
		FromAccount: "神楽",
		ToAccount:   "枚方",
		Amount:      floatPtr(300),
	}

	body, err := EncodeMemo(memo)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	var wire map[string]any
	if err := json.Unmarshal(body, &wire); err != nil {
		t.Fatalf("encoded body is not valid JSON: %v", err)
	}

	// Upstream expects every field key present, nulls for the unset ones.
	for _, key := range []string{"memo_type", "from_account", "to_account", "amount", "cancel_id", "note"} {
		if _, ok := wire[key]; !ok {
			t.Errorf("encoded memo missing key %q", key)
		}
	}

	if wire["memo_type"] != "Payment" {
		t.Errorf("unexpected memo_type: %v", wire["memo_type"])
	}
	if wire["cancel_id"] != nil {
		t.Errorf("expected null cancel_id, got %v", wire["cancel_id"])
	}
}

package ledger

import (
	"context"
	"sort"

	"github.com/cympfh/shanghai/internal/model"
)

// AccountTotal is the total spend recorded for one account.
type AccountTotal struct {
	Account string  `json:"account"`
	Total   float64 `json:"total"`
}

// Settlement describes the outstanding claim between the two settlement
// accounts. When Settled is true the claims cancel out exactly.
type Settlement struct {
	Settled  bool    `json:"settled"`
	Creditor string  `json:"creditor,omitempty"`
	Debtor   string  `json:"debtor,omitempty"`
	Amount   float64 `json:"amount"`
}

// Summary aggregates the non-canceled payments in the journal.
type Summary struct {
	Totals     []AccountTotal `json:"totals"`
	Settlement *Settlement    `json:"settlement,omitempty"`
}

// Summary computes spend totals per payer and the settlement between the
// first two configured accounts.
//
// Each payment accrues its full amount to the payer's total. The amount
// is split evenly across the recipients; every recipient other than the
// payer takes on amount/len(recipients) of debt. A cancel memo voids the
// payment at the position it names.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return s.summarize(entries), nil
}

func (s *Service) summarize(entries []model.Entry) *Summary {
	canceled := CanceledSet(entries)

	payTotal := make(map[string]float64)
	debt := make(map[string]float64)

	for _, entry := range entries {
		if canceled[entry.ID] || entry.Memo.Type != model.MemoTypePayment {
			continue
		}

		memo := entry.Memo
		payTotal[memo.FromAccount] += memo.AmountValue()

		recipients := memo.Recipients()
		if len(recipients) == 0 {
			continue
		}
		share := memo.AmountValue() / float64(len(recipients))
		for _, acc := range recipients {
			if acc != memo.FromAccount {
				debt[acc] += share
			}
		}
	}

	summary := &Summary{
		Totals: orderedTotals(payTotal, s.accounts),
	}

	if len(s.accounts) >= 2 && len(payTotal) > 0 {
		summary.Settlement = settle(debt, s.accounts[0], s.accounts[1])
	}

	return summary
}

// settle computes the claim between accounts a and b. A positive
// difference debt[a]-debt[b] means a holds a claim of that size on b.
func settle(debt map[string]float64, a, b string) *Settlement {
	diff := debt[a] - debt[b]
	switch {
	case diff == 0:
		return &Settlement{Settled: true}
	case diff > 0:
		return &Settlement{Creditor: a, Debtor: b, Amount: diff}
	default:
		return &Settlement{Creditor: b, Debtor: a, Amount: -diff}
	}
}

// orderedTotals renders the totals map deterministically: configured
// accounts first in configuration order, anyone else sorted by name.
func orderedTotals(payTotal map[string]float64, accounts []string) []AccountTotal {
	totals := make([]AccountTotal, 0, len(payTotal))
	seen := make(map[string]bool, len(accounts))

	for _, acc := range accounts {
		seen[acc] = true
		if total, ok := payTotal[acc]; ok {
			totals = append(totals, AccountTotal{Account: acc, Total: total})
		}
	}

	var rest []string
	for acc := range payTotal {
		if !seen[acc] {
			rest = append(rest, acc)
		}
	}
	sort.Strings(rest)
	for _, acc := range rest {
		totals = append(totals, AccountTotal{Account: acc, Total: payTotal[acc]})
	}

	return totals
}

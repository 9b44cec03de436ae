// Package ledger derives per-contact totals from the append-only transfer
// history. Nothing here touches the store: callers pass the transfers in and
// a name table, which keeps the decimal arithmetic exact and testable.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/ravel57/grosze-bot/internal/domain"
)

// UnknownCounterparty labels transfers whose other side cannot be resolved
// to a contact or user anymore. The summary never fails over one bad name.
const UnknownCounterparty = "неизвестный контакт"

type Total struct {
	UserID int64
	Name   string
	Amount decimal.Decimal
}

// OutboundTotals sums everything the owner sent, grouped by receiver in
// first-seen order. Counterparties the owner never sent to are omitted.
func OutboundTotals(ownerID int64, transfers []domain.Transfer, names map[int64]string) []Total {
	return accumulate(transfers, names, func(t domain.Transfer) (int64, decimal.Decimal, bool) {
		if t.FromUserID != ownerID {
			return 0, decimal.Decimal{}, false
		}
		return t.ToUserID, t.Amount, true
	})
}

// NetBalances folds both directions into one signed total per counterparty:
// positive means the owner is owed, negative means the owner owes.
func NetBalances(ownerID int64, transfers []domain.Transfer, names map[int64]string) []Total {
	return accumulate(transfers, names, func(t domain.Transfer) (int64, decimal.Decimal, bool) {
		switch {
		case t.FromUserID == ownerID:
			return t.ToUserID, t.Amount, true
		case t.ToUserID == ownerID:
			return t.FromUserID, t.Amount.Neg(), true
		default:
			return 0, decimal.Decimal{}, false
		}
	})
}

func accumulate(transfers []domain.Transfer, names map[int64]string, pick func(domain.Transfer) (int64, decimal.Decimal, bool)) []Total {
	index := make(map[int64]int)
	var out []Total
	for _, t := range transfers {
		other, amount, ok := pick(t)
		if !ok {
			continue
		}
		i, seen := index[other]
		if !seen {
			name, ok := names[other]
			if !ok || name == "" {
				name = UnknownCounterparty
			}
			index[other] = len(out)
			out = append(out, Total{UserID: other, Name: name, Amount: amount})
			continue
		}
		out[i].Amount = out[i].Amount.Add(amount)
	}
	return out
}

// Package calculator holds the pure balance math: folding expenses into
// per-person net balances and reducing balances into a minimal practical set
// of pairwise transfers. Functions here do no I/O, keep no state, and are
// safe to call concurrently.
package calculator

import "sort"

// ExpenseForBalance carries the minimal expense information needed for
// balance aggregation.
type ExpenseForBalance struct {
	// PayerID is who fronted the amount.
	PayerID string

	// Amount is the total in cents.
	Amount int64

	// Shares maps participant user ID to that participant's share in cents.
	// When empty, the amount falls back to Participants with an equal split;
	// when Participants is also empty the expense counts fully against the
	// payer (paid and owed cancel out).
	Shares map[string]int64

	// Participants lists participant user IDs for an equal split when no
	// explicit shares were recorded.
	Participants []string
}

// TransferForBalance is a completed settlement applied as a synthetic
// offsetting transfer: the debtor's paid total rises, the creditor's owed
// total rises, and the pair's net balances move toward zero.
type TransferForBalance struct {
	FromUserID string
	ToUserID   string
	Amount     int64
}

// PersonBalance is one person's aggregated position across a set of
// expenses. Money fields are real-valued cents: per-participant shares stay
// fractional during accumulation and are only rounded when settlement
// amounts are emitted, so rounding errors never compound.
type PersonBalance struct {
	UserID   string
	UserName string

	// TotalPaid is the sum of amounts this person fronted as payer.
	TotalPaid float64

	// TotalOwed is the sum of this person's shares across all expenses.
	TotalOwed float64

	// NetBalance is TotalPaid - TotalOwed. Positive = owed money,
	// negative = owes money. Sums to zero across a closed set of expenses.
	NetBalance float64
}

// CalculateBalances folds expenses (and optionally completed settlements)
// into one PersonBalance per known user.
//
// Algorithm:
//   - every user in the names map gets a balance record, all-zero if inactive
//   - each expense adds its full amount to the payer's TotalPaid and each
//     participant's share to that participant's TotalOwed
//   - an expense with no shares and no participants is fully self-owed by
//     the payer, netting to zero
//   - each settled transfer adds to the payer's TotalPaid and the
//     receiver's TotalOwed
//
// Contributions referencing user IDs absent from names are dropped silently;
// that is a data-quality issue for the caller to catch upstream, not a
// reason to fail the whole computation.
//
// The result is sorted by user ID so repeated runs are identical.
func CalculateBalances(expenses []ExpenseForBalance, settled []TransferForBalance, names map[string]string) []PersonBalance {
	balances := make(map[string]*PersonBalance, len(names))
	for id, name := range names {
		balances[id] = &PersonBalance{UserID: id, UserName: name}
	}

	for _, exp := range expenses {
		if exp.Amount == 0 {
			continue
		}
		payer, known := balances[exp.PayerID]
		if known {
			payer.TotalPaid += float64(exp.Amount)
		}

		switch {
		case len(exp.Shares) > 0:
			for userID, share := range exp.Shares {
				if bal, ok := balances[userID]; ok {
					bal.TotalOwed += float64(share)
				}
			}
		case len(exp.Participants) > 0:
			share := float64(exp.Amount) / float64(len(exp.Participants))
			for _, userID := range exp.Participants {
				if bal, ok := balances[userID]; ok {
					bal.TotalOwed += share
				}
			}
		case known:
			// No recorded split: the payer owes the whole amount to
			// themselves, contributing nothing to the net balance.
			payer.TotalOwed += float64(exp.Amount)
		}
	}

	for _, tr := range settled {
		if from, ok := balances[tr.FromUserID]; ok {
			from.TotalPaid += float64(tr.Amount)
		}
		if to, ok := balances[tr.ToUserID]; ok {
			to.TotalOwed += float64(tr.Amount)
		}
	}

	result := make([]PersonBalance, 0, len(balances))
	for _, bal := range balances {
		bal.NetBalance = bal.TotalPaid - bal.TotalOwed
		result = append(result, *bal)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result
}

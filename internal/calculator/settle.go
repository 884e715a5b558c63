package calculator

import (
	"math"
	"sort"
)

// settleEpsilon is one cent. Transfers at or below it are rounding dust from
// fractional share accumulation and are never emitted.
const settleEpsilon = 1.0

// SettlementAmount is one suggested transfer from a debtor to a creditor.
// Amounts are rounded to whole cents at emission and always positive.
type SettlementAmount struct {
	From     string
	FromName string
	To       string
	ToName   string
	Amount   int64
}

// SimplifyDebts reduces net balances to a small set of pairwise transfers
// using greedy largest-creditor/largest-debtor matching. The true minimum
// transaction count is NP-hard; the greedy approximation emits at most
// one transfer fewer than the number of people with a nonzero balance.
//
// Output order is creditor-major: all transfers paying off the largest
// creditor come first, in descending debtor order. Sorting is stable, ties
// keep input order, so the result is deterministic for snapshot assertions.
//
// The input is not mutated; cursor arithmetic runs on local copies.
func SimplifyDebts(balances []PersonBalance) []SettlementAmount {
	type party struct {
		userID    string
		userName  string
		remaining float64
	}

	var creditors, debtors []party
	for _, bal := range balances {
		switch {
		case bal.NetBalance > 0:
			creditors = append(creditors, party{bal.UserID, bal.UserName, bal.NetBalance})
		case bal.NetBalance < 0:
			debtors = append(debtors, party{bal.UserID, bal.UserName, -bal.NetBalance})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].remaining > creditors[j].remaining })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].remaining > debtors[j].remaining })

	var settlements []SettlementAmount
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := math.Min(debtor.remaining, creditor.remaining)
		if amount > settleEpsilon {
			settlements = append(settlements, SettlementAmount{
				From:     debtor.userID,
				FromName: debtor.userName,
				To:       creditor.userID,
				ToName:   creditor.userName,
				Amount:   int64(math.Round(amount)),
			})
		}

		debtor.remaining -= amount
		creditor.remaining -= amount

		// Total credits equal total debits, so both lists drain together
		// under exact arithmetic; the epsilon absorbs float slop.
		if debtor.remaining < settleEpsilon {
			i++
		}
		if creditor.remaining < settleEpsilon {
			j++
		}
	}

	return settlements
}

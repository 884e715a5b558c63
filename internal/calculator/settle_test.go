package calculator

import (
	"math"
	"reflect"
	"testing"
)

func TestSimplifyDebts(t *testing.T) {
	tests := []struct {
		name     string
		balances []PersonBalance
		want     []SettlementAmount
	}{
		{
			name: "one creditor two equal debtors, tie keeps input order",
			balances: []PersonBalance{
				{UserID: "alice", UserName: "Alice", NetBalance: 2000},
				{UserID: "bob", UserName: "Bob", NetBalance: -1000},
				{UserID: "carol", UserName: "Carol", NetBalance: -1000},
			},
			want: []SettlementAmount{
				{From: "bob", FromName: "Bob", To: "alice", ToName: "Alice", Amount: 1000},
				{From: "carol", FromName: "Carol", To: "alice", ToName: "Alice", Amount: 1000},
			},
		},
		{
			name: "single pair",
			balances: []PersonBalance{
				{UserID: "alice", UserName: "Alice", NetBalance: 3000},
				{UserID: "bob", UserName: "Bob", NetBalance: -3000},
			},
			want: []SettlementAmount{
				{From: "bob", FromName: "Bob", To: "alice", ToName: "Alice", Amount: 3000},
			},
		},
		{
			name: "cyclic debts that net to zero produce nothing",
			balances: []PersonBalance{
				{UserID: "alice", UserName: "Alice", NetBalance: 0},
				{UserID: "bob", UserName: "Bob", NetBalance: 0},
				{UserID: "carol", UserName: "Carol", NetBalance: 0},
			},
			want: nil,
		},
		{
			name:     "empty input produces nothing",
			balances: nil,
			want:     nil,
		},
		{
			name: "largest creditor is paid first",
			balances: []PersonBalance{
				{UserID: "alice", UserName: "Alice", NetBalance: 1000},
				{UserID: "bob", UserName: "Bob", NetBalance: 5000},
				{UserID: "carol", UserName: "Carol", NetBalance: -4000},
				{UserID: "dave", UserName: "Dave", NetBalance: -2000},
			},
			want: []SettlementAmount{
				{From: "carol", FromName: "Carol", To: "bob", ToName: "Bob", Amount: 4000},
				{From: "dave", FromName: "Dave", To: "bob", ToName: "Bob", Amount: 1000},
				{From: "dave", FromName: "Dave", To: "alice", ToName: "Alice", Amount: 1000},
			},
		},
		{
			name: "sub-cent dust is never emitted",
			balances: []PersonBalance{
				{UserID: "alice", UserName: "Alice", NetBalance: 0.4},
				{UserID: "bob", UserName: "Bob", NetBalance: -0.4},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimplifyDebts(tt.balances)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SimplifyDebts() =\n%+v\nwant\n%+v", got, tt.want)
			}
		})
	}
}

// Applying every emitted transfer must drive every balance to zero.
func TestSimplifyDebtsSettlesEverything(t *testing.T) {
	balances := []PersonBalance{
		{UserID: "alice", UserName: "Alice", NetBalance: 3333.33},
		{UserID: "bob", UserName: "Bob", NetBalance: -1111.11},
		{UserID: "carol", UserName: "Carol", NetBalance: -1111.11},
		{UserID: "dave", UserName: "Dave", NetBalance: -1111.11},
		{UserID: "erin", UserName: "Erin", NetBalance: 0},
	}

	transfers := SimplifyDebts(balances)

	remaining := make(map[string]float64)
	for _, bal := range balances {
		remaining[bal.UserID] = bal.NetBalance
	}
	for _, tr := range transfers {
		if tr.From == tr.To {
			t.Errorf("self-settlement emitted: %+v", tr)
		}
		if tr.Amount <= 0 {
			t.Errorf("non-positive settlement emitted: %+v", tr)
		}
		remaining[tr.From] += float64(tr.Amount)
		remaining[tr.To] -= float64(tr.Amount)
	}
	for userID, rem := range remaining {
		if math.Abs(rem) > 1.0 {
			t.Errorf("%s still has remaining balance %v after applying transfers", userID, rem)
		}
	}

	// Greedy matching emits at most one transfer fewer than the number of
	// people with a nonzero balance.
	nonzero := 0
	for _, bal := range balances {
		if bal.NetBalance != 0 {
			nonzero++
		}
	}
	if len(transfers) > nonzero-1 {
		t.Errorf("emitted %d transfers for %d nonzero balances", len(transfers), nonzero)
	}
}

func TestSimplifyDebtsDoesNotMutateInput(t *testing.T) {
	balances := []PersonBalance{
		{UserID: "alice", UserName: "Alice", NetBalance: 1500},
		{UserID: "bob", UserName: "Bob", NetBalance: -1500},
	}
	snapshot := make([]PersonBalance, len(balances))
	copy(snapshot, balances)

	first := SimplifyDebts(balances)
	second := SimplifyDebts(balances)

	if !reflect.DeepEqual(balances, snapshot) {
		t.Errorf("input mutated: %+v", balances)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs differ:\n%+v\n%+v", first, second)
	}
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitledger/internal/models"
	"splitledger/internal/split"
)

func TestExpenseService_Create(t *testing.T) {
	store := newTestStore(t)
	svc := NewExpenseService(store)
	ctx := context.Background()
	group := createTestGroup(t, store)

	t.Run("equal split defaults to all group members", func(t *testing.T) {
		expense, err := svc.Create(ctx, CreateExpenseParams{
			GroupID:     group.ID,
			Description: "Groceries",
			Amount:      1000,
			PaidBy:      "alice",
			Method:      split.MethodEqual,
		})
		require.NoError(t, err)
		require.Len(t, expense.Shares, 3)

		var sum int64
		for _, share := range expense.Shares {
			sum += share.Amount
		}
		assert.Equal(t, int64(1000), sum)
		// Remainder cent lands on the first member.
		assert.Equal(t, int64(334), expense.Shares[0].Amount)
	})

	t.Run("exact split persists given amounts", func(t *testing.T) {
		expense, err := svc.Create(ctx, CreateExpenseParams{
			GroupID: group.ID,
			Amount:  1000,
			PaidBy:  "alice",
			Method:  split.MethodExact,
			Participants: []split.Input{
				{UserID: "bob", Amount: 600},
				{UserID: "carol", Amount: 400},
			},
		})
		require.NoError(t, err)
		require.Len(t, expense.Shares, 2)
		assert.Equal(t, int64(600), expense.Shares[0].Amount)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateExpenseParams{
			GroupID: group.ID, Amount: 0, PaidBy: "alice", Method: split.MethodEqual,
		})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("rejects payer outside the group", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateExpenseParams{
			GroupID: group.ID, Amount: 100, PaidBy: "mallory", Method: split.MethodEqual,
		})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("rejects participant outside the group", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateExpenseParams{
			GroupID: group.ID,
			Amount:  100,
			PaidBy:  "alice",
			Method:  split.MethodExact,
			Participants: []split.Input{
				{UserID: "mallory", Amount: 100},
			},
		})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("rejects invalid split", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateExpenseParams{
			GroupID: group.ID,
			Amount:  100,
			PaidBy:  "alice",
			Method:  split.MethodExact,
			Participants: []split.Input{
				{UserID: "bob", Amount: 50},
			},
		})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("list returns newest first", func(t *testing.T) {
		expenses, err := svc.List(ctx, group.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, expenses)
	})

	t.Run("list unknown group", func(t *testing.T) {
		_, err := svc.List(ctx, "missing")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestGroupService_Create(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.Create(ctx, "  ", []models.Member{{UserID: "alice", Name: "Alice"}})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("rejects empty member list", func(t *testing.T) {
		_, err := svc.Create(ctx, "Trip", nil)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("rejects duplicate members", func(t *testing.T) {
		_, err := svc.Create(ctx, "Trip", []models.Member{
			{UserID: "alice", Name: "Alice"},
			{UserID: "alice", Name: "Alice again"},
		})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("creates and retrieves group", func(t *testing.T) {
		group, err := svc.Create(ctx, "Trip", []models.Member{
			{UserID: "alice", Name: "Alice"},
			{UserID: "bob", Name: "Bob"},
		})
		require.NoError(t, err)

		retrieved, err := svc.Get(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, group.Name, retrieved.Name)
		assert.Len(t, retrieved.Members, 2)
	})
}

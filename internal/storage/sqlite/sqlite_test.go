package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"splitledger/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func createTestGroup(t *testing.T, store *SQLiteStore) *models.Group {
	t.Helper()

	group := &models.Group{
		Name: "Roommates",
		Members: []models.Member{
			{UserID: "alice", Name: "Alice"},
			{UserID: "bob", Name: "Bob"},
		},
	}
	if err := store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return group
}

func TestGroupStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup generates ID and timestamp", func(t *testing.T) {
		group := createTestGroup(t, store)
		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetGroup retrieves members", func(t *testing.T) {
		original := createTestGroup(t, store)

		retrieved, err := store.GetGroup(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if retrieved.Name != original.Name {
			t.Errorf("Name = %q, want %q", retrieved.Name, original.Name)
		}
		if len(retrieved.Members) != 2 {
			t.Fatalf("expected 2 members, got %d", len(retrieved.Members))
		}
		if retrieved.Members[0].UserID != "alice" || retrieved.Members[0].Name != "Alice" {
			t.Errorf("unexpected first member: %+v", retrieved.Members[0])
		}
	})

	t.Run("GetGroup unknown ID", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "missing")
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListGroups returns created groups", func(t *testing.T) {
		groups, err := store.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(groups) == 0 {
			t.Error("expected at least one group")
		}
	})
}

func TestExpenseStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	group := createTestGroup(t, store)

	t.Run("CreateExpense and ListExpensesByGroup round-trip", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:     group.ID,
			Description: "Groceries",
			Amount:      2599,
			PaidBy:      "alice",
			SplitMethod: "equal",
			Shares: []models.ExpenseShare{
				{UserID: "alice", Amount: 1300},
				{UserID: "bob", Amount: 1299},
			},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("Expected expense ID to be generated")
		}

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(expenses))
		}
		got := expenses[0]
		if got.Amount != 2599 || got.PaidBy != "alice" || got.SplitMethod != "equal" {
			t.Errorf("unexpected expense: %+v", got)
		}
		if len(got.Shares) != 2 {
			t.Fatalf("expected 2 shares, got %d", len(got.Shares))
		}
		if got.Shares[0].UserID != "alice" || got.Shares[0].Amount != 1300 {
			t.Errorf("unexpected first share: %+v", got.Shares[0])
		}
	})
}

func TestSettlementStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	group := createTestGroup(t, store)

	newSettlement := func(t *testing.T) *models.Settlement {
		t.Helper()
		settlement := &models.Settlement{
			GroupID:    group.ID,
			FromUserID: "bob",
			ToUserID:   "alice",
			Amount:     1500,
			Notes:      "rent",
		}
		if err := store.CreateSettlement(ctx, settlement); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}
		return settlement
	}

	t.Run("CreateSettlement starts pending", func(t *testing.T) {
		settlement := newSettlement(t)

		retrieved, err := store.GetSettlement(ctx, settlement.ID)
		if err != nil {
			t.Fatalf("GetSettlement failed: %v", err)
		}
		if retrieved.Status != models.SettlementPending {
			t.Errorf("Status = %q, want pending", retrieved.Status)
		}
		if retrieved.Notes != "rent" {
			t.Errorf("Notes = %q, want rent", retrieved.Notes)
		}
		if retrieved.CompletedAt != 0 || retrieved.CancelledAt != 0 {
			t.Errorf("terminal timestamps should be unset: %+v", retrieved)
		}
	})

	t.Run("CompleteSettlement stamps fields", func(t *testing.T) {
		settlement := newSettlement(t)

		if err := store.CompleteSettlement(ctx, settlement.ID, "alice", 1700000000); err != nil {
			t.Fatalf("CompleteSettlement failed: %v", err)
		}

		retrieved, err := store.GetSettlement(ctx, settlement.ID)
		if err != nil {
			t.Fatalf("GetSettlement failed: %v", err)
		}
		if retrieved.Status != models.SettlementCompleted {
			t.Errorf("Status = %q, want completed", retrieved.Status)
		}
		if retrieved.CompletedAt != 1700000000 || retrieved.CompletedBy != "alice" {
			t.Errorf("completion fields not stamped: %+v", retrieved)
		}
		if retrieved.CancelledAt != 0 {
			t.Errorf("CancelledAt should stay unset, got %d", retrieved.CancelledAt)
		}
	})

	t.Run("CancelSettlement stamps fields", func(t *testing.T) {
		settlement := newSettlement(t)

		if err := store.CancelSettlement(ctx, settlement.ID, 1700000001); err != nil {
			t.Fatalf("CancelSettlement failed: %v", err)
		}

		retrieved, err := store.GetSettlement(ctx, settlement.ID)
		if err != nil {
			t.Fatalf("GetSettlement failed: %v", err)
		}
		if retrieved.Status != models.SettlementCancelled {
			t.Errorf("Status = %q, want cancelled", retrieved.Status)
		}
		if retrieved.CancelledAt != 1700000001 {
			t.Errorf("CancelledAt = %d, want 1700000001", retrieved.CancelledAt)
		}
	})

	t.Run("transitions out of terminal states conflict", func(t *testing.T) {
		settlement := newSettlement(t)
		if err := store.CompleteSettlement(ctx, settlement.ID, "alice", 1700000000); err != nil {
			t.Fatalf("CompleteSettlement failed: %v", err)
		}

		if err := store.CancelSettlement(ctx, settlement.ID, 1700000002); !errors.Is(err, models.ErrConflict) {
			t.Errorf("cancel after complete: expected ErrConflict, got %v", err)
		}
		if err := store.CompleteSettlement(ctx, settlement.ID, "bob", 1700000003); !errors.Is(err, models.ErrConflict) {
			t.Errorf("double complete: expected ErrConflict, got %v", err)
		}
	})

	t.Run("transition on missing settlement", func(t *testing.T) {
		err := store.CompleteSettlement(ctx, "missing", "alice", 1700000000)
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListSettlementsByGroup filters by status", func(t *testing.T) {
		pending, err := store.ListSettlementsByGroup(ctx, group.ID, models.SettlementPending)
		if err != nil {
			t.Fatalf("ListSettlementsByGroup failed: %v", err)
		}
		for _, s := range pending {
			if s.Status != models.SettlementPending {
				t.Errorf("expected only pending settlements, got %q", s.Status)
			}
		}

		all, err := store.ListSettlementsByGroup(ctx, group.ID, "")
		if err != nil {
			t.Fatalf("ListSettlementsByGroup failed: %v", err)
		}
		if len(all) <= len(pending) {
			t.Errorf("expected unfiltered list (%d) to exceed pending list (%d)", len(all), len(pending))
		}
	})
}

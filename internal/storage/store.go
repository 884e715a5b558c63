// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"splitledger/internal/models"
)

// Store defines the interface for ledger storage operations. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group with its members.
	// The group.ID field will be populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID, including members.
	// Returns models.ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups, newest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// CreateExpense persists an expense with its resolved shares.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpensesByGroup retrieves all expenses for a group, newest first,
	// each with its shares.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// CreateSettlement persists a new settlement in pending state.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// GetSettlement retrieves a settlement by ID.
	// Returns models.ErrNotFound if the settlement does not exist.
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)

	// ListSettlementsByGroup retrieves settlements for a group, newest
	// first, optionally filtered by status ("" means all).
	ListSettlementsByGroup(ctx context.Context, groupID string, status models.SettlementStatus) ([]*models.Settlement, error)

	// CompleteSettlement transitions a pending settlement to completed,
	// stamping completedAt and completedBy. The update is conditional on
	// the row still being pending: models.ErrNotFound if the settlement
	// does not exist, models.ErrConflict if it exists but is not pending.
	CompleteSettlement(ctx context.Context, settlementID, completedBy string, completedAt int64) error

	// CancelSettlement transitions a pending settlement to cancelled,
	// stamping cancelledAt, with the same conditional semantics as
	// CompleteSettlement.
	CancelSettlement(ctx context.Context, settlementID string, cancelledAt int64) error

	// Close releases any resources held by the store.
	Close() error
}

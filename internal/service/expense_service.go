package service

import (
	"context"
	"fmt"
	"log/slog"

	"splitledger/internal/models"
	"splitledger/internal/split"
	"splitledger/internal/storage"
)

// ExpenseService records expenses with their splits resolved to flat
// per-member cent shares before anything is persisted.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseParams carries a new expense plus its split specification.
// When Participants is empty and the method is equal, the expense is split
// among all group members.
type CreateExpenseParams struct {
	GroupID      string
	Description  string
	Amount       int64
	PaidBy       string
	Method       split.Method
	Participants []split.Input
}

// Create validates the expense against the group, resolves the split to
// cent shares, and persists it.
func (s *ExpenseService) Create(ctx context.Context, params CreateExpenseParams) (*models.Expense, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrInvalidInput)
	}
	if params.PaidBy == "" {
		return nil, fmt.Errorf("%w: paid_by required", models.ErrInvalidInput)
	}

	group, err := s.store.GetGroup(ctx, params.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(params.PaidBy) {
		return nil, fmt.Errorf("%w: payer %s is not a group member", models.ErrInvalidInput, params.PaidBy)
	}

	inputs := params.Participants
	if len(inputs) == 0 && params.Method == split.MethodEqual {
		// Default equal splits to the whole group.
		inputs = make([]split.Input, len(group.Members))
		for i, m := range group.Members {
			inputs[i] = split.Input{UserID: m.UserID}
		}
	}
	for _, in := range inputs {
		if !group.HasMember(in.UserID) {
			return nil, fmt.Errorf("%w: participant %s is not a group member", models.ErrInvalidInput, in.UserID)
		}
	}

	shares, err := split.Resolve(params.Method, params.Amount, inputs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	expense := &models.Expense{
		GroupID:     params.GroupID,
		Description: params.Description,
		Amount:      params.Amount,
		PaidBy:      params.PaidBy,
		SplitMethod: string(params.Method),
		Shares:      make([]models.ExpenseShare, len(shares)),
	}
	for i, share := range shares {
		expense.Shares[i] = models.ExpenseShare{UserID: share.UserID, Amount: share.Amount}
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", params.GroupID, "error", err)
		return nil, err
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"amount", expense.Amount,
		"split_method", expense.SplitMethod,
	)
	return expense, nil
}

// List retrieves a group's expenses, newest first.
func (s *ExpenseService) List(ctx context.Context, groupID string) ([]*models.Expense, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByGroup(ctx, groupID)
}

package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
)

// CreateExpense persists a new expense and its resolved shares.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount, paid_by, split_method, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount,
		expense.PaidBy, expense.SplitMethod, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, share := range expense.Shares {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, user_id, amount) VALUES (?, ?, ?)",
			expense.ID, share.UserID, share.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListExpensesByGroup retrieves all expenses for a group with their shares,
// newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, description, amount, paid_by, split_method, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Description,
			&expense.Amount, &expense.PaidBy, &expense.SplitMethod, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		shareRows, err := s.db.QueryContext(ctx,
			"SELECT user_id, amount FROM expense_shares WHERE expense_id = ? ORDER BY user_id",
			expense.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get expense shares: %w", err)
		}

		for shareRows.Next() {
			var share models.ExpenseShare
			if err := shareRows.Scan(&share.UserID, &share.Amount); err != nil {
				shareRows.Close()
				return nil, fmt.Errorf("failed to scan expense share: %w", err)
			}
			expense.Shares = append(expense.Shares, share)
		}
		if err := shareRows.Err(); err != nil {
			shareRows.Close()
			return nil, fmt.Errorf("failed to iterate expense shares: %w", err)
		}
		shareRows.Close()
	}

	return expenses, nil
}

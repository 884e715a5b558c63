package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
)

// CreateSettlement persists a new settlement. The row is written in pending
// state regardless of the status on the model.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	settlement.Status = models.SettlementPending

	var notes interface{} = nil
	if settlement.Notes != "" {
		notes = settlement.Notes
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, from_user_id, to_user_id, amount, status, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.GroupID, settlement.FromUserID, settlement.ToUserID,
		settlement.Amount, settlement.Status, notes, settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}

const settlementColumns = `id, group_id, from_user_id, to_user_id, amount, status, notes,
	 created_at, completed_at, completed_by, cancelled_at`

// GetSettlement retrieves a settlement by ID.
func (s *SQLiteStore) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+settlementColumns+" FROM settlements WHERE id = ?",
		settlementID,
	)

	settlement, err := scanSettlement(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("settlement %s: %w", settlementID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	return settlement, nil
}

// ListSettlementsByGroup retrieves settlements for a group, newest first,
// optionally filtered by status.
func (s *SQLiteStore) ListSettlementsByGroup(ctx context.Context, groupID string, status models.SettlementStatus) ([]*models.Settlement, error) {
	query := "SELECT " + settlementColumns + " FROM settlements WHERE group_id = ?"
	args := []interface{}{groupID}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by group: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

// CompleteSettlement transitions a pending settlement to completed. The
// UPDATE is conditional on status so a racing complete/cancel can never
// double-process a settlement: whichever writer runs second matches zero
// rows and gets models.ErrConflict.
func (s *SQLiteStore) CompleteSettlement(ctx context.Context, settlementID, completedBy string, completedAt int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE settlements SET status = ?, completed_at = ?, completed_by = ?
		 WHERE id = ? AND status = ?`,
		models.SettlementCompleted, completedAt, completedBy,
		settlementID, models.SettlementPending,
	)
	if err != nil {
		return fmt.Errorf("failed to complete settlement: %w", err)
	}

	return s.checkTransition(ctx, res, settlementID)
}

// CancelSettlement transitions a pending settlement to cancelled, with the
// same conditional-write semantics as CompleteSettlement.
func (s *SQLiteStore) CancelSettlement(ctx context.Context, settlementID string, cancelledAt int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE settlements SET status = ?, cancelled_at = ?
		 WHERE id = ? AND status = ?`,
		models.SettlementCancelled, cancelledAt,
		settlementID, models.SettlementPending,
	)
	if err != nil {
		return fmt.Errorf("failed to cancel settlement: %w", err)
	}

	return s.checkTransition(ctx, res, settlementID)
}

// checkTransition inspects a conditional UPDATE result: zero rows affected
// means either the settlement is missing or its status precondition failed.
func (s *SQLiteStore) checkTransition(ctx context.Context, res sql.Result, settlementID string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var exists int
	err = s.db.QueryRowContext(ctx, "SELECT 1 FROM settlements WHERE id = ?", settlementID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("settlement %s: %w", settlementID, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check settlement existence: %w", err)
	}
	return fmt.Errorf("settlement %s: %w", settlementID, models.ErrConflict)
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSettlement(row rowScanner) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var notes, completedBy sql.NullString
	var completedAt, cancelledAt sql.NullInt64

	err := row.Scan(&settlement.ID, &settlement.GroupID, &settlement.FromUserID,
		&settlement.ToUserID, &settlement.Amount, &settlement.Status, &notes,
		&settlement.CreatedAt, &completedAt, &completedBy, &cancelledAt)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		settlement.Notes = notes.String
	}
	if completedBy.Valid {
		settlement.CompletedBy = completedBy.String
	}
	if completedAt.Valid {
		settlement.CompletedAt = completedAt.Int64
	}
	if cancelledAt.Valid {
		settlement.CancelledAt = cancelledAt.Int64
	}

	return settlement, nil
}

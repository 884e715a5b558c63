package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"splitledger/internal/calculator"
	"splitledger/internal/metrics"
	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// LedgerService owns the settlement lifecycle and the group balance view.
type LedgerService struct {
	store storage.Store
	now   func() int64
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{
		store: store,
		now:   func() int64 { return time.Now().Unix() },
	}
}

// GroupBalances recomputes the group's balances from its full expense
// history and reduces them to suggested transfers. Completed settlements are
// netted out as synthetic offsetting transfers, so a paid-off debt does not
// reappear in the suggestions; pending and cancelled settlements do not
// affect balances.
func (s *LedgerService) GroupBalances(ctx context.Context, groupID string) ([]calculator.PersonBalance, []calculator.SettlementAmount, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	completed, err := s.store.ListSettlementsByGroup(ctx, groupID, models.SettlementCompleted)
	if err != nil {
		return nil, nil, err
	}

	calcExpenses := make([]calculator.ExpenseForBalance, len(expenses))
	for i, exp := range expenses {
		shares := make(map[string]int64, len(exp.Shares))
		for _, share := range exp.Shares {
			shares[share.UserID] = share.Amount
		}
		calcExpenses[i] = calculator.ExpenseForBalance{
			PayerID: exp.PaidBy,
			Amount:  exp.Amount,
			Shares:  shares,
		}
	}

	settled := make([]calculator.TransferForBalance, len(completed))
	for i, st := range completed {
		settled[i] = calculator.TransferForBalance{
			FromUserID: st.FromUserID,
			ToUserID:   st.ToUserID,
			Amount:     st.Amount,
		}
	}

	balances := calculator.CalculateBalances(calcExpenses, settled, group.MemberNames())
	transfers := calculator.SimplifyDebts(balances)

	slog.Info("GroupBalances computed",
		"group_id", groupID,
		"expenses_count", len(expenses),
		"settled_count", len(completed),
		"transfers_count", len(transfers),
	)
	return balances, transfers, nil
}

// CreateSettlementParams carries a settlement recorded against a computed
// simplified transfer.
type CreateSettlementParams struct {
	GroupID    string
	FromUserID string
	ToUserID   string
	Amount     int64
	Notes      string
}

// CreateSettlement records a pending settlement. No deduplication is
// enforced against existing pending settlements for the same pair; callers
// act on a live computation and are responsible for not recording twice.
func (s *LedgerService) CreateSettlement(ctx context.Context, params CreateSettlementParams) (*models.Settlement, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrInvalidInput)
	}
	if params.FromUserID == "" || params.ToUserID == "" {
		return nil, fmt.Errorf("%w: from and to user ids required", models.ErrInvalidInput)
	}
	if params.FromUserID == params.ToUserID {
		return nil, fmt.Errorf("%w: cannot settle with yourself", models.ErrInvalidInput)
	}

	group, err := s.store.GetGroup(ctx, params.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(params.FromUserID) || !group.HasMember(params.ToUserID) {
		return nil, fmt.Errorf("%w: both parties must be group members", models.ErrInvalidInput)
	}

	settlement := &models.Settlement{
		GroupID:    params.GroupID,
		FromUserID: params.FromUserID,
		ToUserID:   params.ToUserID,
		Amount:     params.Amount,
		Notes:      params.Notes,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("CreateSettlement failed", "group_id", params.GroupID, "error", err)
		return nil, err
	}

	metrics.SettlementTransitions.WithLabelValues(string(models.SettlementPending)).Inc()
	slog.Info("Settlement created",
		"settlement_id", settlement.ID,
		"group_id", settlement.GroupID,
		"amount", settlement.Amount,
	)
	return settlement, nil
}

// CompleteSettlement confirms a pending settlement as paid. A settlement
// already in a terminal state fails with ErrInvalidTransition; one that a
// concurrent writer transitions between our read and write fails with
// ErrConflict, which the caller may retry once after reloading.
func (s *LedgerService) CompleteSettlement(ctx context.Context, settlementID, completedBy string) (*models.Settlement, error) {
	if completedBy == "" {
		return nil, fmt.Errorf("%w: completed_by required", models.ErrInvalidInput)
	}

	settlement, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement.Status.Terminal() {
		return nil, fmt.Errorf("%w: settlement is %s", models.ErrInvalidTransition, settlement.Status)
	}

	if err := s.store.CompleteSettlement(ctx, settlementID, completedBy, s.now()); err != nil {
		slog.Warn("CompleteSettlement failed", "settlement_id", settlementID, "error", err)
		return nil, err
	}

	metrics.SettlementTransitions.WithLabelValues(string(models.SettlementCompleted)).Inc()
	slog.Info("Settlement completed", "settlement_id", settlementID, "completed_by", completedBy)
	return s.store.GetSettlement(ctx, settlementID)
}

// CancelSettlement withdraws a pending settlement, with the same transition
// and conflict semantics as CompleteSettlement.
func (s *LedgerService) CancelSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	settlement, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement.Status.Terminal() {
		return nil, fmt.Errorf("%w: settlement is %s", models.ErrInvalidTransition, settlement.Status)
	}

	if err := s.store.CancelSettlement(ctx, settlementID, s.now()); err != nil {
		slog.Warn("CancelSettlement failed", "settlement_id", settlementID, "error", err)
		return nil, err
	}

	metrics.SettlementTransitions.WithLabelValues(string(models.SettlementCancelled)).Inc()
	slog.Info("Settlement cancelled", "settlement_id", settlementID)
	return s.store.GetSettlement(ctx, settlementID)
}

// ListSettlements retrieves a group's settlements, optionally filtered by
// status ("" means all).
func (s *LedgerService) ListSettlements(ctx context.Context, groupID string, status models.SettlementStatus) ([]*models.Settlement, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListSettlementsByGroup(ctx, groupID, status)
}

package settlement

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"splitledger/internal/http/respond"
	"splitledger/internal/models"
	"splitledger/internal/service"
)

type Handler struct {
	svc *service.LedgerService
}

func NewHandler(svc *service.LedgerService) *Handler {
	return &Handler{svc: svc}
}

// GroupRoutes registers the group-scoped endpoints (mounted at
// /groups/{groupID}).
func (h *Handler) GroupRoutes(r chi.Router) {
	r.Post("/settlements", h.create)
	r.Get("/settlements", h.list)
	r.Get("/balances", h.balances)
}

// Routes registers the settlement lifecycle endpoints (mounted at
// /settlements).
func (h *Handler) Routes(r chi.Router) {
	r.Post("/{settlementID}/complete", h.complete)
	r.Post("/{settlementID}/cancel", h.cancel)
}

type createSettlementRequest struct {
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Amount     int64  `json:"amount"`
	Notes      string `json:"notes,omitempty"`
}

type completeSettlementRequest struct {
	CompletedBy string `json:"completed_by"`
}

type settlementResponse struct {
	ID          string `json:"id"`
	GroupID     string `json:"group_id"`
	FromUserID  string `json:"from_user_id"`
	ToUserID    string `json:"to_user_id"`
	Amount      int64  `json:"amount"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
	CreatedAt   int64  `json:"created_at"`
	CompletedAt int64  `json:"completed_at,omitempty"`
	CompletedBy string `json:"completed_by,omitempty"`
	CancelledAt int64  `json:"cancelled_at,omitempty"`
}

func toResponse(s *models.Settlement) settlementResponse {
	return settlementResponse{
		ID:          s.ID,
		GroupID:     s.GroupID,
		FromUserID:  s.FromUserID,
		ToUserID:    s.ToUserID,
		Amount:      s.Amount,
		Status:      string(s.Status),
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		CompletedAt: s.CompletedAt,
		CompletedBy: s.CompletedBy,
		CancelledAt: s.CancelledAt,
	}
}

type balancePayload struct {
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	TotalPaid  int64  `json:"total_paid"`
	TotalOwed  int64  `json:"total_owed"`
	NetBalance int64  `json:"net_balance"`
}

type transferPayload struct {
	From     string `json:"from"`
	FromName string `json:"from_name"`
	To       string `json:"to"`
	ToName   string `json:"to_name"`
	Amount   int64  `json:"amount"`
}

type balancesResponse struct {
	Balances  []balancePayload  `json:"balances"`
	Transfers []transferPayload `json:"transfers"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	settlement, err := h.svc.CreateSettlement(r.Context(), service.CreateSettlementParams{
		GroupID:    chi.URLParam(r, "groupID"),
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Amount:     req.Amount,
		Notes:      req.Notes,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(settlement))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var status models.SettlementStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := models.ParseSettlementStatus(raw)
		if err != nil {
			respond.Error(w, err)
			return
		}
		status = parsed
	}

	settlements, err := h.svc.ListSettlements(r.Context(), chi.URLParam(r, "groupID"), status)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]settlementResponse, len(settlements))
	for i, s := range settlements {
		resp[i] = toResponse(s)
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) balances(w http.ResponseWriter, r *http.Request) {
	balances, transfers, err := h.svc.GroupBalances(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	// Balance intermediates are fractional cents; round for the wire.
	resp := balancesResponse{
		Balances:  make([]balancePayload, len(balances)),
		Transfers: make([]transferPayload, len(transfers)),
	}
	for i, b := range balances {
		resp.Balances[i] = balancePayload{
			UserID:     b.UserID,
			UserName:   b.UserName,
			TotalPaid:  int64(math.Round(b.TotalPaid)),
			TotalOwed:  int64(math.Round(b.TotalOwed)),
			NetBalance: int64(math.Round(b.NetBalance)),
		}
	}
	for i, t := range transfers {
		resp.Transfers[i] = transferPayload{
			From:     t.From,
			FromName: t.FromName,
			To:       t.To,
			ToName:   t.ToName,
			Amount:   t.Amount,
		}
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	var req completeSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	settlement, err := h.svc.CompleteSettlement(r.Context(), chi.URLParam(r, "settlementID"), req.CompletedBy)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(settlement))
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	settlement, err := h.svc.CancelSettlement(r.Context(), chi.URLParam(r, "settlementID"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(settlement))
}

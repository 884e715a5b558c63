package expense

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"splitledger/internal/http/respond"
	"splitledger/internal/models"
	"splitledger/internal/service"
	"splitledger/internal/split"
)

type Handler struct {
	svc *service.ExpenseService
}

func NewHandler(svc *service.ExpenseService) *Handler {
	return &Handler{svc: svc}
}

// Routes registers the expense endpoints (mounted at /groups/{groupID}/expenses).
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

type participantPayload struct {
	UserID  string  `json:"user_id"`
	Percent float64 `json:"percent,omitempty"`
	Amount  int64   `json:"amount,omitempty"`
	Weight  int64   `json:"weight,omitempty"`
}

type createExpenseRequest struct {
	Description  string               `json:"description"`
	Amount       int64                `json:"amount"`
	PaidBy       string               `json:"paid_by"`
	SplitMethod  string               `json:"split_method"`
	Participants []participantPayload `json:"participants,omitempty"`
}

type sharePayload struct {
	UserID string `json:"user_id"`
	Amount int64  `json:"amount"`
}

type expenseResponse struct {
	ID          string         `json:"id"`
	GroupID     string         `json:"group_id"`
	Description string         `json:"description"`
	Amount      int64          `json:"amount"`
	PaidBy      string         `json:"paid_by"`
	SplitMethod string         `json:"split_method"`
	Shares      []sharePayload `json:"shares"`
	CreatedAt   int64          `json:"created_at"`
}

func toResponse(e *models.Expense) expenseResponse {
	shares := make([]sharePayload, len(e.Shares))
	for i, s := range e.Shares {
		shares[i] = sharePayload{UserID: s.UserID, Amount: s.Amount}
	}
	return expenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		SplitMethod: e.SplitMethod,
		Shares:      shares,
		CreatedAt:   e.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	if req.SplitMethod == "" {
		req.SplitMethod = string(split.MethodEqual)
	}
	method, err := split.ParseMethod(req.SplitMethod)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	inputs := make([]split.Input, len(req.Participants))
	for i, p := range req.Participants {
		inputs[i] = split.Input{
			UserID:  p.UserID,
			Percent: p.Percent,
			Amount:  p.Amount,
			Weight:  p.Weight,
		}
	}

	expense, err := h.svc.Create(r.Context(), service.CreateExpenseParams{
		GroupID:      chi.URLParam(r, "groupID"),
		Description:  req.Description,
		Amount:       req.Amount,
		PaidBy:       req.PaidBy,
		Method:       method,
		Participants: inputs,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(expense))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.List(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}
	respond.JSON(w, http.StatusOK, resp)
}

package group

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"splitledger/internal/http/respond"
	"splitledger/internal/models"
	"splitledger/internal/service"
)

type Handler struct {
	svc *service.GroupService
}

func NewHandler(svc *service.GroupService) *Handler {
	return &Handler{svc: svc}
}

// Routes registers the collection endpoints (mounted at /groups).
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

// ItemRoutes registers the single-group endpoints (mounted at /groups/{groupID}).
func (h *Handler) ItemRoutes(r chi.Router) {
	r.Get("/", h.get)
}

type memberPayload struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type createGroupRequest struct {
	Name    string          `json:"name"`
	Members []memberPayload `json:"members"`
}

type groupResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Members   []memberPayload `json:"members"`
	CreatedAt int64           `json:"created_at"`
}

func toResponse(g *models.Group) groupResponse {
	members := make([]memberPayload, len(g.Members))
	for i, m := range g.Members {
		members[i] = memberPayload{UserID: m.UserID, Name: m.Name}
	}
	return groupResponse{ID: g.ID, Name: g.Name, Members: members, CreatedAt: g.CreatedAt}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	members := make([]models.Member, len(req.Members))
	for i, m := range req.Members {
		members[i] = models.Member{UserID: m.UserID, Name: m.Name}
	}

	group, err := h.svc.Create(r.Context(), req.Name, members)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(group))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]groupResponse, len(groups))
	for i, g := range groups {
		resp[i] = toResponse(g)
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	group, err := h.svc.Get(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(group))
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Heytechmate/overtime-cafe/internal/server/authctx"
	"github.com/Heytechmate/overtime-cafe/internal/service"
	"github.com/go-chi/chi/v5"
)

// LoyaltyAdminHandler is the till side of the stamp card: punches,
// redemptions and the goal tunable.
type LoyaltyAdminHandler struct {
	Service *service.LoyaltyService
}

func (h LoyaltyAdminHandler) RegisterRoutes(r chi.Router) {
	r.Post("/admin/loyalty/punch", h.punch)
	r.Post("/admin/loyalty/redeem", h.redeem)
	r.Put("/admin/loyalty/goal", h.changeGoal)
}

func (h LoyaltyAdminHandler) punch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID string `json:"memberId"`
		Points   int    `json:"points"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.MemberID == "" {
		writeError(w, http.StatusBadRequest, "memberId is required")
		return
	}
	card, err := h.Service.Punch(r.Context(), actorEmail(r), req.MemberID, req.Points)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardResponse(card))
}

func (h LoyaltyAdminHandler) redeem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID string `json:"memberId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.MemberID == "" {
		writeError(w, http.StatusBadRequest, "memberId is required")
		return
	}
	card, err := h.Service.Redeem(r.Context(), actorEmail(r), req.MemberID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardResponse(card))
}

func (h LoyaltyAdminHandler) changeGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goal int `json:"goal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	settings, err := h.Service.ChangeGoal(r.Context(), actorEmail(r), req.Goal)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

func actorEmail(r *http.Request) string {
	if current := authctx.FromContext(r.Context()); current != nil {
		return current.Email
	}
	return ""
}

package handler

import (
	"net/http"

	"github.com/Heytechmate/overtime-cafe/internal/server/authctx"
	"github.com/Heytechmate/overtime-cafe/internal/service"
	"github.com/go-chi/chi/v5"
)

// LoyaltyHandler exposes the member's own stamp card.
type LoyaltyHandler struct {
	Service *service.LoyaltyService
}

func (h LoyaltyHandler) RegisterRoutes(r chi.Router) {
	r.Get("/loyalty/card", h.card)
}

func (h LoyaltyHandler) card(w http.ResponseWriter, r *http.Request) {
	current := authctx.FromContext(r.Context())
	if current == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	card, err := h.Service.Card(r.Context(), current.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardResponse(card))
}

func toCardResponse(card *service.Card) map[string]any {
	return map[string]any{
		"memberId":    card.MemberID,
		"name":        card.Name,
		"coffeeCount": card.CoffeeCount,
		"freeCoffees": card.FreeCoffees,
		"goal":        card.Goal,
	}
}

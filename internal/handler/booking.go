package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/Heytechmate/overtime-cafe/internal/server/authctx"
	"github.com/Heytechmate/overtime-cafe/internal/service"
	"github.com/go-chi/chi/v5"
)

// BookingHandler lets members check slot availability and claim slots.
type BookingHandler struct {
	Service *service.BookingService
}

func (h BookingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/bookings/{facility}/availability", h.availability)
	r.Post("/bookings", h.book)
}

func (h BookingHandler) availability(w http.ResponseWriter, r *http.Request) {
	facility := domain.FacilityID(chi.URLParam(r, "facility"))
	datePtr, err := parseDateQuery(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	date := time.Now()
	if datePtr != nil {
		date = *datePtr
	}

	slots, err := h.Service.Availability(r.Context(), facility, date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]map[string]any, 0, len(slots))
	for _, s := range slots {
		out = append(out, map[string]any{
			"slot":  s.Slot,
			"taken": s.Taken,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"facility": string(facility),
		"date":     date.Format(dateLayout),
		"slots":    out,
	})
}

func (h BookingHandler) book(w http.ResponseWriter, r *http.Request) {
	current := authctx.FromContext(r.Context())
	if current == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		Facility string `json:"facility"`
		Date     string `json:"date"`
		Slot     string `json:"slot"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	name := req.Name
	if name == "" {
		name = current.Email
	}

	booking, err := h.Service.Book(r.Context(), service.BookSlotInput{
		Facility: domain.FacilityID(req.Facility),
		Date:     date,
		Slot:     req.Slot,
		UserName: name,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}

func toBookingResponse(b *domain.Booking) map[string]any {
	return map[string]any{
		"id":        strconv.FormatInt(b.ID, 10),
		"facility":  string(b.Facility),
		"date":      b.Date.Format(dateLayout),
		"slot":      b.Slot,
		"name":      b.UserName,
		"status":    string(b.Status),
		"createdAt": b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/Heytechmate/overtime-cafe/internal/service"
	"github.com/go-chi/chi/v5"
)

// BookingAdminHandler is the staff view over recent bookings.
type BookingAdminHandler struct {
	Service *service.BookingService
}

func (h BookingAdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/bookings", h.recent)
}

func (h BookingAdminHandler) recent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	bookings, err := h.Service.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]any, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

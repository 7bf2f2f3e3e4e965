package handler

import (
	"net/http"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/Heytechmate/overtime-cafe/internal/repository"
	"github.com/go-chi/chi/v5"
)

// FacilityHandler serves the public live status board: store state, facility
// occupancy and the gaming library.
type FacilityHandler struct {
	Facilities repository.FacilityRepository
	Settings   repository.SettingsRepository
}

func (h FacilityHandler) RegisterRoutes(r chi.Router) {
	r.Get("/status", h.storeStatus)
	r.Get("/facilities", h.list)
	r.Get("/facilities/{facility}", h.get)
	r.Get("/gaming/titles", h.gamingTitles)
}

func (h FacilityHandler) storeStatus(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"open":        settings.StoreOpen,
		"message":     settings.StoreMessage,
		"closedDates": settings.ClosedDates,
	})
}

func (h FacilityHandler) list(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.Facilities.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]any, 0, len(statuses))
	for i := range statuses {
		out = append(out, toFacilityResponse(&statuses[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h FacilityHandler) get(w http.ResponseWriter, r *http.Request) {
	facility := domain.FacilityID(chi.URLParam(r, "facility"))
	if !domain.ValidFacility(facility) {
		writeError(w, http.StatusNotFound, "unknown facility")
		return
	}
	status, err := h.Facilities.Get(r.Context(), facility)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFacilityResponse(status))
}

func (h FacilityHandler) gamingTitles(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"titles": settings.GamingTitles})
}

func toFacilityResponse(st *domain.FacilityStatus) map[string]any {
	return map[string]any{
		"facility":   string(st.Facility),
		"occupied":   st.Occupied,
		"message":    st.Message,
		"autoPilot":  st.AutoPilot,
		"manualHold": st.ManualHold,
		"updatedAt":  st.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/Heytechmate/overtime-cafe/internal/repository"
	"github.com/go-chi/chi/v5"
)

// FacilityAdminHandler covers staff overrides: manual occupancy toggles and
// the auto-pilot switch per facility.
type FacilityAdminHandler struct {
	Facilities repository.FacilityRepository
	Logs       repository.ActivityLogRepository
}

func (h FacilityAdminHandler) RegisterRoutes(r chi.Router) {
	r.Put("/admin/facilities/{facility}", h.setManual)
	r.Put("/admin/facilities/{facility}/autopilot", h.setAutoPilot)
	r.Delete("/admin/facilities/{facility}/hold", h.clearHold)
}

// setManual flips occupancy by hand. The hold it raises keeps the
// auto-pilot from undoing the toggle until the next window boundary.
func (h FacilityAdminHandler) setManual(w http.ResponseWriter, r *http.Request) {
	facility := domain.FacilityID(chi.URLParam(r, "facility"))
	if !domain.ValidFacility(facility) {
		writeError(w, http.StatusNotFound, "unknown facility")
		return
	}
	var req struct {
		Occupied bool   `json:"occupied"`
		Message  string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	status, err := h.Facilities.SetManual(r.Context(), facility, req.Occupied, req.Message)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	state := "available"
	if req.Occupied {
		state = "occupied"
	}
	_, _ = h.Logs.Create(r.Context(), repository.CreateActivityLogInput{
		Title:   "Facility toggled",
		Message: fmt.Sprintf("%s set to %s manually", facility, state),
		Actor:   actorEmail(r),
		Type:    domain.LogInfo,
	})
	writeJSON(w, http.StatusOK, toFacilityResponse(status))
}

func (h FacilityAdminHandler) setAutoPilot(w http.ResponseWriter, r *http.Request) {
	facility := domain.FacilityID(chi.URLParam(r, "facility"))
	if !domain.ValidFacility(facility) {
		writeError(w, http.StatusNotFound, "unknown facility")
		return
	}
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Facilities.SetAutoPilot(r.Context(), facility, req.Enabled); err != nil {
		writeDomainError(w, err)
		return
	}
	status, err := h.Facilities.Get(r.Context(), facility)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFacilityResponse(status))
}

func (h FacilityAdminHandler) clearHold(w http.ResponseWriter, r *http.Request) {
	facility := domain.FacilityID(chi.URLParam(r, "facility"))
	if !domain.ValidFacility(facility) {
		writeError(w, http.StatusNotFound, "unknown facility")
		return
	}
	if err := h.Facilities.ClearHold(r.Context(), facility); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

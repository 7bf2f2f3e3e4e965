package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/Heytechmate/overtime-cafe/internal/repository"
	"github.com/go-chi/chi/v5"
)

// SettingsAdminHandler mutates the venue's singleton settings: store open
// state, holiday planner and the gaming library.
type SettingsAdminHandler struct {
	Repo repository.SettingsRepository
	Logs repository.ActivityLogRepository
}

func (h SettingsAdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/settings", h.get)
	r.Put("/admin/settings/store", h.setStoreStatus)
	r.Put("/admin/settings/closed-dates", h.setClosedDates)
	r.Put("/admin/settings/gaming-titles", h.setGamingTitles)
}

func (h SettingsAdminHandler) get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Repo.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

func (h SettingsAdminHandler) setStoreStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Open    bool   `json:"open"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	settings, err := h.Repo.SetStoreStatus(r.Context(), req.Open, req.Message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	state := "closed"
	if req.Open {
		state = "open"
	}
	_, _ = h.Logs.Create(r.Context(), repository.CreateActivityLogInput{
		Title:   "Store status changed",
		Message: "store marked " + state,
		Actor:   actorEmail(r),
		Type:    domain.LogInfo,
	})
	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

func (h SettingsAdminHandler) setClosedDates(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Dates []string `json:"dates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	for _, d := range req.Dates {
		if _, err := time.Parse(dateLayout, d); err != nil {
			writeError(w, http.StatusBadRequest, "invalid date "+d)
			return
		}
	}
	settings, err := h.Repo.SetClosedDates(r.Context(), req.Dates)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

func (h SettingsAdminHandler) setGamingTitles(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Titles []string `json:"titles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	settings, err := h.Repo.SetGamingTitles(r.Context(), req.Titles)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

func toSettingsResponse(s *domain.Settings) map[string]any {
	return map[string]any{
		"coffeeGoal":   s.CoffeeGoal,
		"storeOpen":    s.StoreOpen,
		"storeMessage": s.StoreMessage,
		"closedDates":  s.ClosedDates,
		"gamingTitles": s.GamingTitles,
		"updatedAt":    s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

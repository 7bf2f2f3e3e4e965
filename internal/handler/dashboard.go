package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/repository"
	"github.com/go-chi/chi/v5"
)

// DashboardHandler is the admin landing view: live counts, top items and
// the activity trail.
type DashboardHandler struct {
	Dashboard repository.DashboardRepository
	Logs      repository.ActivityLogRepository
}

func (h DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/dashboard", h.summary)
	r.Get("/admin/dashboard/top-items", h.topItems)
	r.Get("/admin/activity", h.activity)
}

func (h DashboardHandler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.Dashboard.Summary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"openOrders":    s.OpenOrders,
		"todayOrders":   s.TodayOrders,
		"todayRevenue":  s.TodayRevenue,
		"todayBookings": s.TodayBookings,
		"totalMembers":  s.TotalMembers,
	})
}

func (h DashboardHandler) topItems(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.Dashboard.TopItems(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		out = append(out, map[string]any{
			"name":   it.Name,
			"amount": it.Amount,
			"count":  it.Count,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h DashboardHandler) activity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.Logs.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]any{
			"id":       strconv.FormatInt(e.ID, 10),
			"title":    e.Title,
			"message":  e.Message,
			"actor":    e.Actor,
			"type":     string(e.Type),
			"loggedAt": e.LoggedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/Heytechmate/overtime-cafe/internal/repository"
	"github.com/Heytechmate/overtime-cafe/internal/server/authctx"
	"github.com/go-chi/chi/v5"
)

// NotificationHandler serves the member's in-app notification feed.
type NotificationHandler struct {
	Repo repository.NotificationRepository
}

func (h NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/notifications", h.list)
	r.Post("/notifications/{id}/read", h.markRead)
}

func (h NotificationHandler) list(w http.ResponseWriter, r *http.Request) {
	current := authctx.FromContext(r.Context())
	if current == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.Repo.List(r.Context(), current.ID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]any, 0, len(items))
	for i := range items {
		out = append(out, toNotificationResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h NotificationHandler) markRead(w http.ResponseWriter, r *http.Request) {
	current := authctx.FromContext(r.Context())
	if current == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.MarkRead(r.Context(), current.ID, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func toNotificationResponse(n *domain.Notification) map[string]any {
	out := map[string]any{
		"id":        strconv.FormatInt(n.ID, 10),
		"title":     n.Title,
		"message":   n.Message,
		"type":      string(n.Type),
		"read":      n.ReadAt != nil,
		"createdAt": n.CreatedAt.UTC().Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		out["readAt"] = n.ReadAt.UTC().Format(time.RFC3339)
	}
	return out
}

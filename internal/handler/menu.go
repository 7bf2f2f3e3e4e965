package handler

import (
	"net/http"
	"strconv"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/Heytechmate/overtime-cafe/internal/repository"
	"github.com/go-chi/chi/v5"
)

// MenuHandler serves the public menu.
type MenuHandler struct {
	Repo repository.MenuRepository
}

func (h MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/menu", h.list)
	r.Get("/menu/{id}", h.get)
}

func (h MenuHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]any, 0, len(items))
	for i := range items {
		out = append(out, toMenuItemResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h MenuHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	item, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

func toMenuItemResponse(item *domain.MenuItem) map[string]any {
	return map[string]any{
		"id":            strconv.FormatInt(item.ID, 10),
		"name":          item.Name,
		"category":      string(item.Category),
		"price":         item.Price.Amount,
		"description":   item.Description,
		"tags":          item.Tags,
		"isRecommended": item.IsRecommended,
		"rating":        item.Rating,
		"reviewCount":   item.ReviewCount,
		"sizes":         toOptionResponses(item.Sizes),
		"addOns":        toOptionResponses(item.AddOns),
	}
}

func toOptionResponses(options []domain.MenuOption) []map[string]any {
	out := make([]map[string]any, 0, len(options))
	for _, opt := range options {
		out = append(out, map[string]any{
			"name":  opt.Name,
			"price": opt.Price.Amount,
		})
	}
	return out
}

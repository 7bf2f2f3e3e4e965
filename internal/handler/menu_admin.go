package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/Heytechmate/overtime-cafe/internal/repository"
	"github.com/go-chi/chi/v5"
)

// MenuAdminHandler lets staff manage menu items.
type MenuAdminHandler struct {
	Repo repository.MenuRepository
}

func (h MenuAdminHandler) RegisterRoutes(r chi.Router) {
	r.Post("/admin/menu", h.create)
	r.Put("/admin/menu/{id}", h.update)
	r.Delete("/admin/menu/{id}", h.remove)
}

type menuItemRequest struct {
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Price         int64    `json:"price"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	IsRecommended bool     `json:"isRecommended"`
	Rating        *float64 `json:"rating"`
	ReviewCount   *int     `json:"reviewCount"`
	Sizes         []struct {
		Name  string `json:"name"`
		Price int64  `json:"price"`
	} `json:"sizes"`
	AddOns []struct {
		Name  string `json:"name"`
		Price int64  `json:"price"`
	} `json:"addOns"`
}

func (h MenuAdminHandler) create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, 0)
}

func (h MenuAdminHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	h.save(w, r, id)
}

func (h MenuAdminHandler) save(w http.ResponseWriter, r *http.Request, id int64) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	switch domain.MenuCategory(req.Category) {
	case domain.CategoryBeverage, domain.CategorySnack, domain.CategoryProductivity, domain.CategoryCreative:
	default:
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	item := domain.MenuItem{
		ID:            id,
		Name:          req.Name,
		Category:      domain.MenuCategory(req.Category),
		Price:         domain.Money{Amount: req.Price},
		Description:   req.Description,
		Tags:          req.Tags,
		IsRecommended: req.IsRecommended,
		Rating:        req.Rating,
		ReviewCount:   req.ReviewCount,
	}
	for _, s := range req.Sizes {
		item.Sizes = append(item.Sizes, domain.MenuOption{Name: s.Name, Price: domain.Money{Amount: s.Price}})
	}
	for _, a := range req.AddOns {
		item.AddOns = append(item.AddOns, domain.MenuOption{Name: a.Name, Price: domain.Money{Amount: a.Price}})
	}

	saved, err := h.Repo.Save(r.Context(), item)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, toMenuItemResponse(saved))
}

func (h MenuAdminHandler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

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

// OrderHandler covers the member-facing side of the order workflow.
type OrderHandler struct {
	Service *service.OrderService
}

func (h OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.place)
	r.Get("/orders", h.listActive)
	r.Get("/orders/{id}", h.get)
	r.Post("/orders/{id}/collect", h.collect)
}

func (h OrderHandler) place(w http.ResponseWriter, r *http.Request) {
	current := authctx.FromContext(r.Context())
	if current == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		DeliveryMethod string `json:"deliveryMethod"`
		DeskLocation   string `json:"deskLocation"`
		Items          []struct {
			MenuItemID string   `json:"menuItemId"`
			Qty        int      `json:"qty"`
			Size       *string  `json:"size"`
			AddOns     []string `json:"addOns"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	in := service.PlaceOrderInput{
		DeliveryMethod: domain.DeliveryMethod(req.DeliveryMethod),
		DeskLocation:   req.DeskLocation,
	}
	for _, item := range req.Items {
		itemID, err := strconv.ParseInt(item.MenuItemID, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid menu item id")
			return
		}
		in.Items = append(in.Items, service.PlaceOrderItem{
			MenuItemID: itemID,
			Qty:        item.Qty,
			Size:       item.Size,
			AddOns:     item.AddOns,
		})
	}

	order, err := h.Service.Place(r.Context(), current.ID, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h OrderHandler) listActive(w http.ResponseWriter, r *http.Request) {
	current := authctx.FromContext(r.Context())
	if current == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	orders, err := h.Service.ActiveForUser(r.Context(), current.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h OrderHandler) get(w http.ResponseWriter, r *http.Request) {
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
	order, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// Members see only their own orders; staff use the admin queue.
	if order.UserID != current.ID && current.Role != domain.RoleAdmin {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// collect is the owner's Ready → Collected step; loyalty stamps accrue in
// the same transaction.
func (h OrderHandler) collect(w http.ResponseWriter, r *http.Request) {
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
	order, err := h.Service.Collect(r.Context(), id, current.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func toOrderResponse(o *domain.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, line := range o.Items {
		items = append(items, map[string]any{
			"name":      line.Name,
			"category":  string(line.Category),
			"size":      line.Size,
			"addOns":    line.AddOns,
			"unitPrice": line.UnitPrice.Amount,
			"qty":       line.Qty,
		})
	}
	out := map[string]any{
		"id":             strconv.FormatInt(o.ID, 10),
		"userId":         strconv.FormatInt(o.UserID, 10),
		"userName":       o.UserName,
		"orderNumber":    o.OrderNumber,
		"refCode":        o.RefCode,
		"status":         string(o.Status),
		"deliveryMethod": string(o.DeliveryMethod),
		"deskLocation":   o.DeskLocation,
		"total":          o.Total.Amount,
		"items":          items,
		"createdAt":      o.CreatedAt.UTC().Format(time.RFC3339),
	}
	if o.CollectedAt != nil {
		out["collectedAt"] = o.CollectedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func toOrderResponses(orders []domain.Order) []map[string]any {
	out := make([]map[string]any, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out
}

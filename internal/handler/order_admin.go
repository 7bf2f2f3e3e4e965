package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/Heytechmate/overtime-cafe/internal/repository"
	"github.com/Heytechmate/overtime-cafe/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
)

// OrderAdminHandler is the staff side: the fulfillment queue, the workflow
// steps and order exports.
type OrderAdminHandler struct {
	Service *service.OrderService
	Orders  repository.OrderRepository
}

func (h OrderAdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/orders", h.queue)
	r.Get("/admin/orders/history", h.history)
	r.Get("/admin/orders/export", h.export)
	r.Post("/admin/orders/{id}/start", h.start)
	r.Post("/admin/orders/{id}/ready", h.ready)
	r.Post("/admin/orders/{id}/cancel", h.cancel)
}

func (h OrderAdminHandler) queue(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Service.Queue(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h OrderAdminHandler) history(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	orders, err := h.Orders.ListByDateRange(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h OrderAdminHandler) start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.StartPrep)
}

func (h OrderAdminHandler) ready(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.MarkReady)
}

func (h OrderAdminHandler) cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Cancel)
}

func (h OrderAdminHandler) transition(w http.ResponseWriter, r *http.Request, step func(ctx context.Context, id int64) (*domain.Order, error)) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	order, err := step(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h OrderAdminHandler) export(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	orders, err := h.Orders.ListByDateRange(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filenameSuffix := from.Format(dateLayout) + "_" + to.Add(-24*time.Hour).Format(dateLayout)
	switch strings.ToLower(r.URL.Query().Get("format")) {
	case "", "csv":
		data, err := exportOrdersCSV(orders)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"orders_%s.csv\"", filenameSuffix))
		_, _ = w.Write(data)
	case "xlsx", "excel":
		data, err := exportOrdersXLSX(orders)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"orders_%s.xlsx\"", filenameSuffix))
		_, _ = w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use csv or xlsx)")
	}
}

// dateRange reads from/to query params; default is today. to is exclusive.
func dateRange(r *http.Request) (time.Time, time.Time, error) {
	fromPtr, err := parseDateQuery(r, "from")
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date")
	}
	toPtr, err := parseDateQuery(r, "to")
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date")
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if fromPtr != nil {
		from = *fromPtr
	}
	to := from.Add(24 * time.Hour)
	if toPtr != nil {
		to = toPtr.Add(24 * time.Hour)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to date before from date")
	}
	return from, to, nil
}

func exportOrdersCSV(orders []domain.Order) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"id", "order_number", "ref_code", "member", "status", "delivery", "desk", "total", "items", "created_at"})
	for _, o := range orders {
		_ = w.Write([]string{
			strconv.FormatInt(o.ID, 10),
			strconv.FormatInt(o.OrderNumber, 10),
			o.RefCode,
			o.UserName,
			string(o.Status),
			string(o.DeliveryMethod),
			o.DeskLocation,
			strconv.FormatInt(o.Total.Amount, 10),
			summarizeItems(o.Items),
			o.CreatedAt.Format(dateLayout),
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportOrdersXLSX(orders []domain.Order) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Orders"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"ID", "Order #", "Ref Code", "Member", "Status", "Delivery", "Desk", "Total", "Items", "Created"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, o := range orders {
		row := r + 2
		values := []any{
			o.ID,
			o.OrderNumber,
			o.RefCode,
			o.UserName,
			string(o.Status),
			string(o.DeliveryMethod),
			o.DeskLocation,
			o.Total.Amount,
			summarizeItems(o.Items),
			o.CreatedAt.Format(dateLayout),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 8)
	_ = f.SetColWidth(sheet, "B", "B", 10)
	_ = f.SetColWidth(sheet, "C", "C", 38)
	_ = f.SetColWidth(sheet, "D", "D", 22)
	_ = f.SetColWidth(sheet, "E", "G", 12)
	_ = f.SetColWidth(sheet, "H", "H", 12)
	_ = f.SetColWidth(sheet, "I", "I", 40)
	_ = f.SetColWidth(sheet, "J", "J", 12)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "J1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func summarizeItems(items []domain.OrderLine) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", it.Qty, it.Name))
	}
	return strings.Join(parts, ", ")
}

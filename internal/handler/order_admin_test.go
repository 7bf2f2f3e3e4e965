package handler

import (
	"bytes"
	"encoding/csv"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRangeDefaultsToToday(t *testing.T) {
	req := httptest.NewRequest("GET", "/admin/orders/export", nil)
	from, to, err := dateRange(req)
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, now.Year(), from.Year())
	assert.Equal(t, now.YearDay(), from.YearDay())
	assert.Equal(t, 24*time.Hour, to.Sub(from))
}

func TestDateRangeExplicit(t *testing.T) {
	req := httptest.NewRequest("GET", "/admin/orders/export?from=2025-06-01&to=2025-06-07", nil)
	from, to, err := dateRange(req)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", from.Format(dateLayout))
	// to is exclusive: the 7th is included in full.
	assert.Equal(t, "2025-06-08", to.Format(dateLayout))
}

func TestDateRangeRejectsBadInput(t *testing.T) {
	req := httptest.NewRequest("GET", "/admin/orders/export?from=yesterday", nil)
	_, _, err := dateRange(req)
	assert.Error(t, err)

	req = httptest.NewRequest("GET", "/admin/orders/export?from=2025-06-07&to=2025-06-01", nil)
	_, _, err = dateRange(req)
	assert.Error(t, err)
}

func sampleOrders() []domain.Order {
	size := "Large"
	return []domain.Order{
		{
			ID:             1,
			OrderNumber:    12,
			RefCode:        "7b0c1f34-9a5e-4f7d-8a9e-0f1c2d3e4f5a",
			UserName:       "Nadia Perera",
			Status:         domain.OrderCollected,
			DeliveryMethod: domain.DeliveryDesk,
			DeskLocation:   "Desk 4",
			Total:          domain.Money{Amount: 2550},
			Items: []domain.OrderLine{
				{Name: "Iced Latte", Category: domain.CategoryBeverage, Size: &size, Qty: 2, UnitPrice: domain.Money{Amount: 1100}},
				{Name: "Butter Croissant", Category: domain.CategorySnack, Qty: 1, UnitPrice: domain.Money{Amount: 850}},
			},
			CreatedAt: time.Date(2025, 6, 14, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestExportOrdersCSV(t *testing.T) {
	data, err := exportOrdersCSV(sampleOrders())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "order_number", records[0][1])
	assert.Equal(t, "12", records[1][1])
	assert.Equal(t, "Nadia Perera", records[1][3])
	assert.Equal(t, "2x Iced Latte, 1x Butter Croissant", records[1][8])
}

func TestExportOrdersXLSX(t *testing.T) {
	data, err := exportOrdersXLSX(sampleOrders())
	require.NoError(t, err)
	// XLSX files are zip archives.
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}

func TestSummarizeItemsEmpty(t *testing.T) {
	assert.Equal(t, "", summarizeItems(nil))
}

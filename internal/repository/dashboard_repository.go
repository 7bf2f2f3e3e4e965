package repository

import (
	"context"

	"github.com/Heytechmate/overtime-cafe/internal/db"
)

type DashboardRepository struct {
	DB *db.Postgres
}

type DashboardSummary struct {
	OpenOrders    int64
	TodayOrders   int64
	TodayRevenue  int64
	TodayBookings int64
	TotalMembers  int64
}

func (r DashboardRepository) Summary(ctx context.Context) (DashboardSummary, error) {
	var s DashboardSummary
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status IN ('Pending','Preparing','Ready')) AS open_orders,
			COUNT(*) FILTER (WHERE created_at::date = CURRENT_DATE) AS today_orders,
			COALESCE(SUM(total) FILTER (WHERE created_at::date = CURRENT_DATE AND status <> 'Cancelled'), 0) AS today_revenue
		FROM orders
		WHERE deleted_at IS NULL
	`).Scan(&s.OpenOrders, &s.TodayOrders, &s.TodayRevenue)
	if err != nil {
		return s, err
	}

	if err := r.DB.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM bookings WHERE deleted_at IS NULL AND booking_date = CURRENT_DATE
	`).Scan(&s.TodayBookings); err != nil {
		return s, err
	}

	err = r.DB.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM users WHERE deleted_at IS NULL AND role = 'member'
	`).Scan(&s.TotalMembers)
	return s, err
}

// TopItems ranks menu items by ordered quantity.
func (r DashboardRepository) TopItems(ctx context.Context, limit int) ([]DashboardItem, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT oi.name, COALESCE(SUM(oi.unit_price*oi.qty),0) AS amount, SUM(oi.qty) AS qty
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.deleted_at IS NULL AND o.status <> 'Cancelled'
		GROUP BY oi.name
		ORDER BY qty DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []DashboardItem
	for rows.Next() {
		var it DashboardItem
		if err := rows.Scan(&it.Name, &it.Amount, &it.Count); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type DashboardItem struct {
	Name   string
	Amount int64
	Count  int64
}

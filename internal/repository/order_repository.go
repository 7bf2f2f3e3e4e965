package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/db"
	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ErrInvalidTransition is returned when a status update does not match the
// expected current state (wrong step in the workflow, or wrong actor).
var ErrInvalidTransition = errors.New("invalid order transition")

type OrderRepository struct {
	DB       *db.Postgres
	Counters CounterRepository
}

type CreateOrderInput struct {
	UserID         int64
	UserName       string
	DeliveryMethod domain.DeliveryMethod
	DeskLocation   string
	Total          int64
	Items          []CreateOrderItem
}

type CreateOrderItem struct {
	Name      string
	Category  domain.MenuCategory
	Size      *string
	AddOns    []string
	UnitPrice int64
	Qty       int
}

const orderDateLayout = "2006-01-02"

// Create inserts the order, its item snapshot and the per-day order number
// in one transaction. The number comes from the daily counter locked in the
// same transaction, so an order never commits without its number and the
// sequence has no gaps.
func (r OrderRepository) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	number, err := r.Counters.NextDailyOrderSeqWithTx(ctx, tx, now.Format(orderDateLayout))
	if err != nil {
		return nil, err
	}

	refCode := uuid.NewString()
	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, user_name, order_number, ref_code, status, delivery_method, desk_location, total, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8, now(), now())
		RETURNING id
	`, in.UserID, in.UserName, number, refCode, domain.OrderPending, in.DeliveryMethod, in.DeskLocation, in.Total).Scan(&id)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:             id,
		UserID:         in.UserID,
		UserName:       in.UserName,
		OrderNumber:    number,
		RefCode:        refCode,
		Status:         domain.OrderPending,
		DeliveryMethod: in.DeliveryMethod,
		DeskLocation:   in.DeskLocation,
		Total:          domain.Money{Amount: in.Total},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, item := range in.Items {
		var lineID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, name, category, size, add_ons, unit_price, qty)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			RETURNING id
		`, id, item.Name, item.Category, item.Size, item.AddOns, item.UnitPrice, item.Qty).Scan(&lineID)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, domain.OrderLine{
			ID:        lineID,
			OrderID:   id,
			Name:      item.Name,
			Category:  item.Category,
			Size:      item.Size,
			AddOns:    item.AddOns,
			UnitPrice: domain.Money{Amount: item.UnitPrice},
			Qty:       item.Qty,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus applies one workflow step. The WHERE clause pins the current
// status, so skipping a step (or replaying one) affects zero rows.
func (r OrderRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.OrderStatus) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE orders
		SET status=$1, updated_at=now()
		WHERE id=$2 AND status=$3 AND deleted_at IS NULL
	`, to, id, from)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// Collect flips Ready→Collected for the owning member and runs after inside
// the same transaction (loyalty accrual), so the two commit atomically.
func (r OrderRepository) Collect(ctx context.Context, id, userID int64, after func(ctx context.Context, tx pgx.Tx, order *domain.Order) error) (*domain.Order, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `
		UPDATE orders
		SET status=$1, collected_at=now(), updated_at=now()
		WHERE id=$2 AND user_id=$3 AND status=$4 AND deleted_at IS NULL
	`, domain.OrderCollected, id, userID, domain.OrderReady)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrInvalidTransition
	}

	order, err := r.getWith(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if after != nil {
		if err := after(ctx, tx, order); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

func (r OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.getWith(ctx, r.DB.Pool, id)
}

// ListActiveByUser returns the member's in-flight orders, oldest first.
func (r OrderRepository) ListActiveByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return r.list(ctx, `
		WHERE deleted_at IS NULL AND user_id = $1 AND status IN ('Pending','Preparing','Ready')
		ORDER BY created_at ASC, id ASC
	`, userID)
}

// ListQueue returns the fulfillment queue for staff, oldest first.
func (r OrderRepository) ListQueue(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `
		WHERE deleted_at IS NULL AND status IN ('Pending','Preparing','Ready')
		ORDER BY created_at ASC, id ASC
	`)
}

// ListByDateRange returns orders created within [from, to), newest first.
func (r OrderRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	return r.list(ctx, `
		WHERE deleted_at IS NULL AND created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC, id DESC
	`, from, to)
}

const orderColumns = `id, user_id, user_name, order_number, ref_code, status, delivery_method, desk_location, total, created_at, updated_at, collected_at`

func (r OrderRepository) getWith(ctx context.Context, q pgxQuerier, id int64) (*domain.Order, error) {
	row := q.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items, err := r.itemsFor(ctx, q, []int64{id})
	if err != nil {
		return nil, err
	}
	order.Items = items[id]
	return order, nil
}

func (r OrderRepository) list(ctx context.Context, clause string, args ...any) ([]domain.Order, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
	`+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []int64
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return orders, nil
	}

	itemsByOrder, err := r.itemsFor(ctx, r.DB.Pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
	}
	return orders, nil
}

func (r OrderRepository) itemsFor(ctx context.Context, q pgxQuerier, ids []int64) (map[int64][]domain.OrderLine, error) {
	rows, err := q.Query(ctx, `
		SELECT id, order_id, name, category, size, add_ons, unit_price, qty
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]domain.OrderLine)
	for rows.Next() {
		var (
			line     domain.OrderLine
			category string
			size     pgtype.Text
		)
		if err := rows.Scan(&line.ID, &line.OrderID, &line.Name, &category, &size, &line.AddOns, &line.UnitPrice.Amount, &line.Qty); err != nil {
			return nil, err
		}
		line.Category = domain.MenuCategory(category)
		if size.Valid {
			line.Size = &size.String
		}
		out[line.OrderID] = append(out[line.OrderID], line)
	}
	return out, rows.Err()
}

func scanOrder(row interface {
	Scan(dest ...any) error
}) (*domain.Order, error) {
	var (
		o        domain.Order
		status   string
		delivery string
	)
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.UserName,
		&o.OrderNumber,
		&o.RefCode,
		&status,
		&delivery,
		&o.DeskLocation,
		&o.Total.Amount,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.CollectedAt,
	); err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	o.DeliveryMethod = domain.DeliveryMethod(delivery)
	return &o, nil
}

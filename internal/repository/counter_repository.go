package repository

import (
	"context"

	"github.com/Heytechmate/overtime-cafe/internal/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	CounterMembers     = "members"
	CounterDailyOrders = "daily_orders"
)

// CounterRepository hands out sequential identifiers. Every call locks the
// counter row inside a transaction, so concurrent callers serialize and no
// two of them observe the same prior value.
type CounterRepository struct {
	DB *db.Postgres
}

// NextMemberSeq returns the next value of the global member sequence.
func (r CounterRepository) NextMemberSeq(ctx context.Context) (int64, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	next, err := r.nextWith(ctx, tx, CounterMembers, nil)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return next, nil
}

// NextDailyOrderSeq returns the next per-day order number. When the stored
// date differs from today the sequence restarts at 1.
func (r CounterRepository) NextDailyOrderSeq(ctx context.Context, today string) (int64, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	next, err := r.nextWith(ctx, tx, CounterDailyOrders, &today)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return next, nil
}

// NextDailyOrderSeqWithTx is the same read-modify-write inside an existing
// transaction, used by order creation so the number and the order commit
// atomically.
func (r CounterRepository) NextDailyOrderSeqWithTx(ctx context.Context, tx pgx.Tx, today string) (int64, error) {
	return r.nextWith(ctx, tx, CounterDailyOrders, &today)
}

func (r CounterRepository) nextWith(ctx context.Context, q pgxQuerier, name string, today *string) (int64, error) {
	var (
		prior      int64
		storedDate pgtype.Text
	)
	err := q.QueryRow(ctx, `
		SELECT count, counted_date
		FROM counters
		WHERE name = $1
		FOR UPDATE
	`, name).Scan(&prior, &storedDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			prior = 0
		} else {
			return 0, err
		}
	}

	if today != nil && (!storedDate.Valid || storedDate.String != *today) {
		// Day rollover: the effective prior count is zero.
		prior = 0
	}
	next := prior + 1

	_, err = q.Exec(ctx, `
		INSERT INTO counters (name, count, counted_date, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (name) DO UPDATE SET
			count = EXCLUDED.count,
			counted_date = EXCLUDED.counted_date,
			updated_at = now()
	`, name, next, today)
	if err != nil {
		return 0, err
	}
	return next, nil
}

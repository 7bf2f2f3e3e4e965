package repository

import (
	"context"
	"errors"

	"github.com/Heytechmate/overtime-cafe/internal/db"
	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/jackc/pgx/v5"
)

// ErrNoCredit is returned when redeeming against an empty balance.
var ErrNoCredit = errors.New("no free coffees to redeem")

// LoyaltyRepository mutates the stamp count and free-coffee balance on the
// member row. All accrual paths lock the row inside a transaction, so a
// staff punch and a self-collect accrual can never clobber each other.
type LoyaltyRepository struct {
	DB *db.Postgres
}

type LoyaltyBalance struct {
	CoffeeCount int
	FreeCoffees int
	FreeEarned  int
}

// AddPoints accrues points for a member in its own transaction.
func (r LoyaltyRepository) AddPoints(ctx context.Context, userID int64, points, goal int) (*LoyaltyBalance, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	bal, err := r.AddPointsWithTx(ctx, tx, userID, points, goal)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return bal, nil
}

// AddPointsWithTx accrues points inside an existing transaction (used by
// order collection so the status flip and the accrual commit together).
func (r LoyaltyRepository) AddPointsWithTx(ctx context.Context, tx pgx.Tx, userID int64, points, goal int) (*LoyaltyBalance, error) {
	var current, free int
	err := tx.QueryRow(ctx, `
		SELECT coffee_count, free_coffees
		FROM users
		WHERE id=$1 AND deleted_at IS NULL
		FOR UPDATE
	`, userID).Scan(&current, &free)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	res := domain.ApplyStamps(current, points, goal)
	var bal LoyaltyBalance
	err = tx.QueryRow(ctx, `
		UPDATE users
		SET coffee_count=$1,
			free_coffees=free_coffees+$2,
			updated_at=now()
		WHERE id=$3
		RETURNING coffee_count, free_coffees
	`, res.CoffeeCount, res.FreeEarned, userID).Scan(&bal.CoffeeCount, &bal.FreeCoffees)
	if err != nil {
		return nil, err
	}
	bal.FreeEarned = res.FreeEarned
	return &bal, nil
}

// RedeemFree spends one free coffee. The balance guard lives in the SQL,
// so a zero balance is rejected without any write.
func (r LoyaltyRepository) RedeemFree(ctx context.Context, userID int64) (*LoyaltyBalance, error) {
	var bal LoyaltyBalance
	err := r.DB.Pool.QueryRow(ctx, `
		UPDATE users
		SET free_coffees=free_coffees-1, updated_at=now()
		WHERE id=$1 AND deleted_at IS NULL AND free_coffees > 0
		RETURNING coffee_count, free_coffees
	`, userID).Scan(&bal.CoffeeCount, &bal.FreeCoffees)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing member from an empty balance.
			var exists bool
			if checkErr := r.DB.Pool.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM users WHERE id=$1 AND deleted_at IS NULL)`, userID,
			).Scan(&exists); checkErr != nil {
				return nil, checkErr
			}
			if !exists {
				return nil, ErrNotFound
			}
			return nil, ErrNoCredit
		}
		return nil, err
	}
	return &bal, nil
}

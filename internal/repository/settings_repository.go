package repository

import (
	"context"

	"github.com/Heytechmate/overtime-cafe/internal/db"
	"github.com/Heytechmate/overtime-cafe/internal/domain"
)

// SettingsRepository manages the singleton tunables row (id=1).
type SettingsRepository struct {
	DB *db.Postgres
}

const settingsColumns = `coffee_goal, store_open, store_message, closed_dates, gaming_titles, updated_at`

func (r SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	return r.getWith(ctx, r.DB.Pool)
}

func (r SettingsRepository) getWith(ctx context.Context, q pgxQuerier) (*domain.Settings, error) {
	row := q.QueryRow(ctx, `
		SELECT `+settingsColumns+`
		FROM settings
		WHERE id=1
	`)
	var s domain.Settings
	if err := row.Scan(&s.CoffeeGoal, &s.StoreOpen, &s.StoreMessage, &s.ClosedDates, &s.GamingTitles, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r SettingsRepository) SetCoffeeGoal(ctx context.Context, goal int) (*domain.Settings, error) {
	return r.update(ctx, `coffee_goal=$1`, goal)
}

func (r SettingsRepository) SetStoreStatus(ctx context.Context, open bool, message string) (*domain.Settings, error) {
	return r.update(ctx, `store_open=$1, store_message=$2`, open, message)
}

func (r SettingsRepository) SetClosedDates(ctx context.Context, dates []string) (*domain.Settings, error) {
	if dates == nil {
		dates = []string{}
	}
	return r.update(ctx, `closed_dates=$1`, dates)
}

func (r SettingsRepository) SetGamingTitles(ctx context.Context, titles []string) (*domain.Settings, error) {
	if titles == nil {
		titles = []string{}
	}
	return r.update(ctx, `gaming_titles=$1`, titles)
}

func (r SettingsRepository) update(ctx context.Context, set string, args ...any) (*domain.Settings, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE settings
		SET `+set+`, updated_at=now()
		WHERE id=1
		RETURNING `+settingsColumns+`
	`, args...)
	var s domain.Settings
	if err := row.Scan(&s.CoffeeGoal, &s.StoreOpen, &s.StoreMessage, &s.ClosedDates, &s.GamingTitles, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

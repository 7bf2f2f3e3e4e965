package repository

import (
	"context"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/db"
	"github.com/Heytechmate/overtime-cafe/internal/domain"
)

type ActivityLogRepository struct {
	DB *db.Postgres
}

type CreateActivityLogInput struct {
	Title     string
	Message   string
	Actor     string
	Type      domain.ActivityLogType
	Timestamp time.Time
}

func (r ActivityLogRepository) Create(ctx context.Context, in CreateActivityLogInput) (int64, error) {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	logType := in.Type
	if logType == "" {
		logType = domain.LogInfo
	}
	var id int64
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO activity_logs (title, message, actor, type, logged_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`, in.Title, in.Message, in.Actor, string(logType), ts).Scan(&id)
	return id, err
}

func (r ActivityLogRepository) List(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, title, message, actor, type, logged_at
		FROM activity_logs
		WHERE deleted_at IS NULL
		ORDER BY logged_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ActivityLog
	for rows.Next() {
		var entry domain.ActivityLog
		var logType string
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.Message, &entry.Actor, &logType, &entry.LoggedAt); err != nil {
			return nil, err
		}
		entry.Type = domain.ActivityLogType(logType)
		items = append(items, entry)
	}
	return items, rows.Err()
}

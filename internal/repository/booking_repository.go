package repository

import (
	"context"
	"time"

	"github.com/Heytechmate/overtime-cafe/internal/db"
	"github.com/Heytechmate/overtime-cafe/internal/domain"
)

type BookingRepository struct {
	DB *db.Postgres
}

type CreateBookingInput struct {
	Facility domain.FacilityID
	Date     time.Time
	Slot     string
	UserName string
}

// Create claims a slot. The partial unique index on (facility, date, slot)
// makes the claim transactional: the second concurrent caller gets
// ErrSlotTaken instead of a silent double booking.
func (r BookingRepository) Create(ctx context.Context, in CreateBookingInput) (*domain.Booking, error) {
	var b domain.Booking
	var facility, status string
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO bookings (facility, booking_date, slot, user_name, status, created_at)
		VALUES ($1,$2,$3,$4,$5, now())
		RETURNING id, facility, booking_date, slot, user_name, status, created_at
	`, in.Facility, in.Date, in.Slot, in.UserName, domain.BookingConfirmed).Scan(
		&b.ID, &facility, &b.Date, &b.Slot, &b.UserName, &status, &b.CreatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	b.Facility = domain.FacilityID(facility)
	b.Status = domain.BookingStatus(status)
	return &b, nil
}

// ListByFacilityDate returns bookings for one facility on one day.
func (r BookingRepository) ListByFacilityDate(ctx context.Context, facility domain.FacilityID, date time.Time) ([]domain.Booking, error) {
	return r.list(ctx, `
		WHERE deleted_at IS NULL AND facility=$1 AND booking_date=$2
		ORDER BY slot
	`, facility, date)
}

// ListRecent returns the newest bookings across all facilities.
func (r BookingRepository) ListRecent(ctx context.Context, limit int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.list(ctx, `
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
}

// CountByDate counts bookings on a given day.
func (r BookingRepository) CountByDate(ctx context.Context, date time.Time) (int64, error) {
	var n int64
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM bookings WHERE deleted_at IS NULL AND booking_date=$1
	`, date).Scan(&n)
	return n, err
}

func (r BookingRepository) list(ctx context.Context, clause string, args ...any) ([]domain.Booking, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, facility, booking_date, slot, user_name, status, created_at
		FROM bookings
	`+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var (
			b        domain.Booking
			facility string
			status   string
		)
		if err := rows.Scan(&b.ID, &facility, &b.Date, &b.Slot, &b.UserName, &status, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Facility = domain.FacilityID(facility)
		b.Status = domain.BookingStatus(status)
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

package repository

import (
	"context"
	"errors"

	"github.com/Heytechmate/overtime-cafe/internal/db"
	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/jackc/pgx/v5"
)

type FacilityRepository struct {
	DB *db.Postgres
}

const facilityColumns = `facility, occupied, message, auto_pilot, manual_hold, updated_at`

func (r FacilityRepository) Get(ctx context.Context, id domain.FacilityID) (*domain.FacilityStatus, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+facilityColumns+`
		FROM facilities
		WHERE facility=$1
	`, id)
	st, err := scanFacility(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return st, nil
}

func (r FacilityRepository) List(ctx context.Context) ([]domain.FacilityStatus, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+facilityColumns+`
		FROM facilities
		ORDER BY facility
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FacilityStatus
	for rows.Next() {
		st, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *st)
	}
	return out, rows.Err()
}

// SetManual applies a staff toggle and raises the manual hold so the
// auto-pilot does not fight the override mid-window.
func (r FacilityRepository) SetManual(ctx context.Context, id domain.FacilityID, occupied bool, message string) (*domain.FacilityStatus, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE facilities
		SET occupied=$1, message=$2, manual_hold=TRUE, updated_at=now()
		WHERE facility=$3
		RETURNING `+facilityColumns+`
	`, occupied, message, id)
	st, err := scanFacility(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return st, nil
}

// SetAutoPilot enables or disables schedule reconciliation for a facility.
func (r FacilityRepository) SetAutoPilot(ctx context.Context, id domain.FacilityID, enabled bool) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE facilities SET auto_pilot=$1, updated_at=now() WHERE facility=$2
	`, enabled, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Reconcile is the auto-pilot write path: it flips occupancy and clears any
// manual hold in one statement.
func (r FacilityRepository) Reconcile(ctx context.Context, id domain.FacilityID, occupied bool) error {
	_, err := r.DB.Pool.Exec(ctx, `
		UPDATE facilities
		SET occupied=$1, manual_hold=FALSE, updated_at=now()
		WHERE facility=$2
	`, occupied, id)
	return err
}

// ClearHold releases a manual hold without changing occupancy.
func (r FacilityRepository) ClearHold(ctx context.Context, id domain.FacilityID) error {
	_, err := r.DB.Pool.Exec(ctx, `
		UPDATE facilities SET manual_hold=FALSE, updated_at=now() WHERE facility=$1
	`, id)
	return err
}

func scanFacility(row interface {
	Scan(dest ...any) error
}) (*domain.FacilityStatus, error) {
	var (
		st       domain.FacilityStatus
		facility string
	)
	if err := row.Scan(&facility, &st.Occupied, &st.Message, &st.AutoPilot, &st.ManualHold, &st.UpdatedAt); err != nil {
		return nil, err
	}
	st.Facility = domain.FacilityID(facility)
	return &st, nil
}

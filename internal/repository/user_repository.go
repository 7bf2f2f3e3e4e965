package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/Heytechmate/overtime-cafe/internal/db"
	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserRepository struct {
	DB *db.Postgres
}

type CreateUserParams struct {
	MemberID     string
	Name         string
	Email        string
	Phone        string
	Role         domain.UserRole
	PasswordHash *string
	IsGoogle     bool
}

const userColumns = `id, member_id, name, first_name, last_name, email, phone, role, tier,
       coffee_count, free_coffees, birth_date, profile_complete, is_google, password_hash,
       joined_at, updated_at`

func (r UserRepository) Create(ctx context.Context, p CreateUserParams) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO users (member_id, name, email, phone, role, password_hash, is_google, joined_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7, now(), now())
		RETURNING `+userColumns+`
	`, p.MemberID, p.Name, p.Email, p.Phone, p.Role, p.PasswordHash, p.IsGoogle)
	return scanUser(row)
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email=$1 AND deleted_at IS NULL
	`, email)
	return r.one(row)
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	return r.one(row)
}

func (r UserRepository) GetByMemberID(ctx context.Context, memberID string) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE member_id=$1 AND deleted_at IS NULL
	`, strings.ToUpper(memberID))
	return r.one(row)
}

type UpdateProfileParams struct {
	FirstName string
	LastName  string
	Phone     string
	BirthDate string
}

// CompleteProfile fills in onboarding details and flips the completion flag.
// Existing fields like email and role are untouched.
func (r UserRepository) CompleteProfile(ctx context.Context, id int64, p UpdateProfileParams) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE users
		SET name=$1,
			first_name=$2,
			last_name=$3,
			phone=$4,
			birth_date=$5,
			profile_complete=TRUE,
			updated_at=now()
		WHERE id=$6 AND deleted_at IS NULL
		RETURNING `+userColumns+`
	`, strings.TrimSpace(p.FirstName+" "+p.LastName), p.FirstName, p.LastName, p.Phone, p.BirthDate, id)
	return r.one(row)
}

func (r UserRepository) SetRole(ctx context.Context, id int64, role domain.UserRole) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE users SET role=$1, updated_at=now() WHERE id=$2 AND deleted_at IS NULL
	`, role, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPasswordHash updates credentials for email/password accounts.
func (r UserRepository) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE users SET password_hash=$1, updated_at=now() WHERE id=$2 AND deleted_at IS NULL
	`, hash, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns members newest first.
func (r UserRepository) List(ctx context.Context, limit int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY joined_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// Search matches name, email, member ID or phone, case-insensitively.
func (r UserRepository) Search(ctx context.Context, term string, limit int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 50
	}
	pattern := "%" + strings.ToLower(term) + "%"
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE deleted_at IS NULL AND (
			lower(name) LIKE $1 OR
			lower(email) LIKE $1 OR
			lower(coalesce(member_id, '')) LIKE $1 OR
			lower(phone) LIKE $1
		)
		ORDER BY joined_at DESC, id DESC
		LIMIT $2
	`, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`).Scan(&n)
	return n, err
}

func (r UserRepository) one(row pgx.Row) (*domain.User, error) {
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func collectUsers(rows pgx.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		u         domain.User
		memberID  pgtype.Text
		role      string
		birthDate pgtype.Text
	)
	if err := row.Scan(
		&u.ID,
		&memberID,
		&u.Name,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Phone,
		&role,
		&u.Tier,
		&u.CoffeeCount,
		&u.FreeCoffees,
		&birthDate,
		&u.ProfileComplete,
		&u.IsGoogle,
		&u.PasswordHash,
		&u.JoinedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = domain.UserRole(role)
	if memberID.Valid {
		u.MemberID = memberID.String
	}
	if birthDate.Valid {
		u.BirthDate = &birthDate.String
	}
	return &u, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/Heytechmate/overtime-cafe/internal/db"
	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/jackc/pgx/v5"
)

type MenuRepository struct {
	DB *db.Postgres
}

const menuColumns = `id, name, category, price, description, tags, is_recommended, rating, review_count, created_at, updated_at`

func (r MenuRepository) List(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT `+menuColumns+`
		FROM menu_items
		WHERE deleted_at IS NULL
		ORDER BY category, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	var ids []int64
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
		ids = append(ids, item.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return items, nil
	}

	optionsByItem, err := r.optionsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Sizes = optionsByItem[items[i].ID]["size"]
		items[i].AddOns = optionsByItem[items[i].ID]["addon"]
	}
	return items, nil
}

func (r MenuRepository) GetByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT `+menuColumns+`
		FROM menu_items
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	optionsByItem, err := r.optionsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	item.Sizes = optionsByItem[id]["size"]
	item.AddOns = optionsByItem[id]["addon"]
	return item, nil
}

// Save inserts or updates an item and rewrites its size/add-on options.
func (r MenuRepository) Save(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if item.ID == 0 {
		err = tx.QueryRow(ctx, `
			INSERT INTO menu_items (name, category, price, description, tags, is_recommended, rating, review_count, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8, now(), now())
			RETURNING id, created_at, updated_at
		`, item.Name, item.Category, item.Price.Amount, item.Description, item.Tags,
			item.IsRecommended, item.Rating, item.ReviewCount).
			Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	} else {
		err = tx.QueryRow(ctx, `
			UPDATE menu_items
			SET name=$1,
				category=$2,
				price=$3,
				description=$4,
				tags=$5,
				is_recommended=$6,
				rating=$7,
				review_count=$8,
				updated_at=now(),
				deleted_at=NULL
			WHERE id=$9
			RETURNING id, created_at, updated_at
		`, item.Name, item.Category, item.Price.Amount, item.Description, item.Tags,
			item.IsRecommended, item.Rating, item.ReviewCount, item.ID).
			Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM menu_options WHERE item_id=$1`, item.ID); err != nil {
		return nil, err
	}
	if err := insertOptions(ctx, tx, item.ID, "size", item.Sizes); err != nil {
		return nil, err
	}
	if err := insertOptions(ctx, tx, item.ID, "addon", item.AddOns); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r MenuRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Pool.Exec(ctx, `
		UPDATE menu_items SET deleted_at=now() WHERE id=$1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func insertOptions(ctx context.Context, tx pgx.Tx, itemID int64, kind string, options []domain.MenuOption) error {
	for i, opt := range options {
		if _, err := tx.Exec(ctx, `
			INSERT INTO menu_options (item_id, kind, name, price, position)
			VALUES ($1,$2,$3,$4,$5)
		`, itemID, kind, opt.Name, opt.Price.Amount, i); err != nil {
			return err
		}
	}
	return nil
}

func (r MenuRepository) optionsFor(ctx context.Context, ids []int64) (map[int64]map[string][]domain.MenuOption, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT item_id, kind, name, price
		FROM menu_options
		WHERE item_id = ANY($1)
		ORDER BY item_id, kind, position
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]map[string][]domain.MenuOption)
	for rows.Next() {
		var (
			itemID int64
			kind   string
			opt    domain.MenuOption
		)
		if err := rows.Scan(&itemID, &kind, &opt.Name, &opt.Price.Amount); err != nil {
			return nil, err
		}
		if out[itemID] == nil {
			out[itemID] = make(map[string][]domain.MenuOption)
		}
		out[itemID][kind] = append(out[itemID][kind], opt)
	}
	return out, rows.Err()
}

func scanMenuItem(row interface {
	Scan(dest ...any) error
}) (*domain.MenuItem, error) {
	var (
		item     domain.MenuItem
		category string
	)
	if err := row.Scan(
		&item.ID,
		&item.Name,
		&category,
		&item.Price.Amount,
		&item.Description,
		&item.Tags,
		&item.IsRecommended,
		&item.Rating,
		&item.ReviewCount,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	item.Category = domain.MenuCategory(category)
	return &item, nil
}

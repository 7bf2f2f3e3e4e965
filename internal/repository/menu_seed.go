package repository

import (
	"context"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
)

func (r MenuRepository) SeedDefaults(ctx context.Context) error {
	defaults := []domain.MenuItem{
		{Name: "Flat White", Category: domain.CategoryBeverage, Price: domain.Money{Amount: 950}, Description: "Double ristretto, velvet microfoam.", Tags: []string{"Hot"}, IsRecommended: true},
		{Name: "Iced Latte", Category: domain.CategoryBeverage, Price: domain.Money{Amount: 1100}, Description: "Cold-brew base over ice.", Tags: []string{"Cold"}},
		{Name: "Ceylon Tea", Category: domain.CategoryBeverage, Price: domain.Money{Amount: 600}, Description: "Single-estate high-grown leaves.", Tags: []string{"Hot"}},
		{Name: "Butter Croissant", Category: domain.CategorySnack, Price: domain.Money{Amount: 850}, Description: "Baked every morning.", Tags: []string{"Fresh"}},
		{Name: "Chocolate Chip Cookie", Category: domain.CategorySnack, Price: domain.Money{Amount: 500}, Description: "Soft centre, sea salt finish.", Tags: []string{}},
		{Name: "Whiteboard Marker Set", Category: domain.CategoryProductivity, Price: domain.Money{Amount: 1200}, Description: "Four colours, dry erase.", Tags: []string{"Desk"}},
		{Name: "Sketchbook A5", Category: domain.CategoryCreative, Price: domain.Money{Amount: 1800}, Description: "120gsm, 80 pages.", Tags: []string{"Paper"}},
	}

	for _, item := range defaults {
		// Idempotent: menu_items.name is unique.
		_, err := r.DB.Pool.Exec(ctx, `
			INSERT INTO menu_items (name, category, price, description, tags, is_recommended, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6, now(), now())
			ON CONFLICT (name) DO NOTHING
		`, item.Name, item.Category, item.Price.Amount, item.Description, item.Tags, item.IsRecommended)
		if err != nil {
			return err
		}
	}
	return nil
}

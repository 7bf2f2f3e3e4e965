package service

import (
	"testing"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMenuItem() *domain.MenuItem {
	return &domain.MenuItem{
		Name:     "Iced Latte",
		Category: domain.CategoryBeverage,
		Price:    domain.Money{Amount: 1100},
		Sizes: []domain.MenuOption{
			{Name: "Regular", Price: domain.Money{Amount: 0}},
			{Name: "Large", Price: domain.Money{Amount: 250}},
		},
		AddOns: []domain.MenuOption{
			{Name: "Extra Shot", Price: domain.Money{Amount: 200}},
			{Name: "Oat Milk", Price: domain.Money{Amount: 150}},
		},
	}
}

func TestPriceLineBaseOnly(t *testing.T) {
	unit, err := priceLine(testMenuItem(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1100), unit)
}

func TestPriceLineWithSizeAndAddOns(t *testing.T) {
	size := "Large"
	unit, err := priceLine(testMenuItem(), &size, []string{"Extra Shot", "Oat Milk"})
	require.NoError(t, err)
	assert.Equal(t, int64(1100+250+200+150), unit)
}

func TestPriceLineUnknownSize(t *testing.T) {
	size := "Venti"
	_, err := priceLine(testMenuItem(), &size, nil)
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestPriceLineUnknownAddOn(t *testing.T) {
	_, err := priceLine(testMenuItem(), nil, []string{"Whipped Cream"})
	assert.ErrorIs(t, err, ErrUnknownOption)
}

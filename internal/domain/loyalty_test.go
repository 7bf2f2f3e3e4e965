package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyStampsSinglePunch(t *testing.T) {
	// 9 stamps + 1 at goal 10: card resets and one free coffee is earned.
	res := ApplyStamps(9, 1, 10)
	assert.Equal(t, 0, res.CoffeeCount)
	assert.Equal(t, 1, res.FreeEarned)

	res = ApplyStamps(3, 1, 10)
	assert.Equal(t, 4, res.CoffeeCount)
	assert.Equal(t, 0, res.FreeEarned)
}

func TestApplyStampsCrossesGoalMultipleTimes(t *testing.T) {
	// 8 + 25 at goal 10 = 33 total: three free coffees, 3 stamps remain.
	res := ApplyStamps(8, 25, 10)
	assert.Equal(t, 3, res.CoffeeCount)
	assert.Equal(t, 3, res.FreeEarned)
}

func TestApplyStampsExactGoal(t *testing.T) {
	res := ApplyStamps(0, 10, 10)
	assert.Equal(t, 0, res.CoffeeCount)
	assert.Equal(t, 1, res.FreeEarned)
}

func TestApplyStampsDefaultsAndClamps(t *testing.T) {
	// Non-positive goal falls back to 10.
	res := ApplyStamps(9, 1, 0)
	assert.Equal(t, 0, res.CoffeeCount)
	assert.Equal(t, 1, res.FreeEarned)

	// Negative points never decrement the card.
	res = ApplyStamps(5, -3, 10)
	assert.Equal(t, 5, res.CoffeeCount)
	assert.Equal(t, 0, res.FreeEarned)
}

func TestQualifiesForStamp(t *testing.T) {
	assert.True(t, QualifiesForStamp("Ceylon Tea", CategoryBeverage))
	assert.True(t, QualifiesForStamp("Iced Latte", CategorySnack))
	assert.True(t, QualifiesForStamp("Espresso Brownie", CategorySnack))
	assert.True(t, QualifiesForStamp("COFFEE cake", CategorySnack))
	assert.False(t, QualifiesForStamp("Chocolate Chip Cookie", CategorySnack))
	assert.False(t, QualifiesForStamp("Sketchbook A5", CategoryCreative))
	// Substring matches don't count, whole words do.
	assert.False(t, QualifiesForStamp("Toffee Slice", CategorySnack))
}

func TestOrderPoints(t *testing.T) {
	items := []OrderLine{
		{Name: "Iced Latte", Category: CategoryBeverage, Qty: 2},
		{Name: "Chocolate Chip Cookie", Category: CategorySnack, Qty: 3},
	}
	assert.Equal(t, 2, OrderPoints(items))

	assert.Equal(t, 0, OrderPoints(nil))
}

package domain

import (
	"regexp"
	"strings"
)

// coffeePattern matches item names that earn stamps even when the menu
// category is not Beverage (mirrors the point-of-sale naming convention).
var coffeePattern = regexp.MustCompile(`(?i)\b(coffee|latte|cappuccino|espresso)\b`)

// StampResult is the outcome of applying loyalty points to a member.
type StampResult struct {
	CoffeeCount int
	FreeEarned  int
}

// ApplyStamps adds points to a member's running stamp count against the
// configured goal. Every full goal converts into one free coffee; the
// remainder stays on the card. For a single stamp this is exactly the
// "reset to zero, grant one" behavior of the punch card.
func ApplyStamps(current, points, goal int) StampResult {
	if goal <= 0 {
		goal = 10
	}
	if points < 0 {
		points = 0
	}
	total := current + points
	return StampResult{
		CoffeeCount: total % goal,
		FreeEarned:  total / goal,
	}
}

// QualifiesForStamp reports whether an ordered item earns loyalty stamps.
func QualifiesForStamp(name string, category MenuCategory) bool {
	if category == CategoryBeverage {
		return true
	}
	return coffeePattern.MatchString(strings.TrimSpace(name))
}

// OrderPoints sums the stamp-earning quantity across an order's lines.
func OrderPoints(items []OrderLine) int {
	points := 0
	for _, it := range items {
		if QualifiesForStamp(it.Name, it.Category) {
			points += it.Qty
		}
	}
	return points
}

package catalog

import (
	"math"

	"github.com/tradezlk/vendorgo/internal/models"
)

// round2 rounds to currency minor units (2 decimal places).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ApplyDiscount computes the effective price after applying a discount to
// basePrice. A value of zero or less leaves the price unchanged. Percentage
// values are clamped to [0,100]; the result never goes below zero. Safe to
// call on every keystroke for a live preview.
func ApplyDiscount(basePrice float64, typ models.DiscountType, value float64) float64 {
	if value <= 0 {
		return basePrice
	}
	if typ == models.DiscountPercent {
		pct := math.Min(value, 100)
		return math.Max(0, round2(basePrice*(1-pct/100)))
	}
	return math.Max(0, round2(basePrice-value))
}

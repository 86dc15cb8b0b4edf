// Package pricing computes discounted prices and booking totals.
// Pure computation, no dependencies and no side effects.
package pricing

import "math"

// LineItem is one priced position (a service or a product selection)
type LineItem struct {
	Price           float64
	DiscountPercent float64 // 0-100
	Quantity        int     // values below 1 are treated as 1
}

// Totals holds aggregated original/discounted sums and the resulting savings
type Totals struct {
	Original   float64
	Discounted float64
	Savings    float64
}

// Round2 rounds to 2 decimal places using half-up rounding.
// Applied once at the point of persistence, never during aggregation,
// to avoid cumulative rounding drift.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// ClampDiscount clamps a discount percent into [0, 100]
func ClampDiscount(discountPercent float64) float64 {
	if discountPercent < 0 {
		return 0
	}
	if discountPercent > 100 {
		return 100
	}
	return discountPercent
}

// DiscountedPrice returns base * (1 - discountPercent/100) in full precision.
// A zero discount yields the base price unchanged.
func DiscountedPrice(base, discountPercent float64) float64 {
	d := ClampDiscount(discountPercent)
	if d == 0 {
		return base
	}
	return base * (1 - d/100)
}

// LineTotal sums per-item original and discounted prices and computes savings.
// Aggregation happens in full precision; each aggregate is rounded once at the end.
// For any input: Discounted <= Original and Savings >= 0.
func LineTotal(items []LineItem) Totals {
	var original, discounted float64

	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		original += item.Price * float64(qty)
		discounted += DiscountedPrice(item.Price, item.DiscountPercent) * float64(qty)
	}

	return Totals{
		Original:   Round2(original),
		Discounted: Round2(discounted),
		Savings:    Round2(original - discounted),
	}
}

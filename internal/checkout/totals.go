// Package checkout computes order totals and submits orders through an
// injectable submission boundary.
package checkout

import "math"

// Rates are the configured inputs to the totals computation.
type Rates struct {
	FreeShippingThresholdCents int64
	FlatRateCents              int64
	TaxRate                    float64
}

// Totals is the derived cost breakdown for a cart. All amounts are cents.
type Totals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TaxCents      int64 `json:"tax_cents"`
	TotalCents    int64 `json:"total_cents"`
	FreeShipping  bool  `json:"free_shipping"`
}

// ComputeTotals derives shipping, tax and total from a subtotal. Shipping
// is free at or above the threshold, otherwise the flat rate. Tax is
// rounded to whole cents exactly once, at the end, so no rounding error
// compounds. Pure: same inputs, same result.
func ComputeTotals(subtotalCents int64, rates Rates) Totals {
	shipping := rates.FlatRateCents
	if subtotalCents >= rates.FreeShippingThresholdCents {
		shipping = 0
	}
	tax := int64(math.Round(float64(subtotalCents) * rates.TaxRate))
	return Totals{
		SubtotalCents: subtotalCents,
		ShippingCents: shipping,
		TaxCents:      tax,
		TotalCents:    subtotalCents + shipping + tax,
		FreeShipping:  shipping == 0,
	}
}

// AmountToFreeShippingCents returns how far subtotal is from the free
// shipping threshold, floored at zero.
func AmountToFreeShippingCents(subtotalCents, thresholdCents int64) int64 {
	remaining := thresholdCents - subtotalCents
	if remaining < 0 {
		return 0
	}
	return remaining
}

package pricing

import (
	"listing-pricing/core/types"
	"listing-pricing/internal/errors"
)

// CheckInvariants rejects a quote that no valid catalog could produce.
// Values are never clamped: a violation means the catalog is misconfigured
// and the quote must not reach checkout.
func CheckInvariants(q *types.PriceQuote) error {
	b := q.Breakdown

	if b.AfterDuration.IsNegative() {
		return invariant(q, "combined duration discount "+b.DurationPercent().String()+" exceeds the subtotal")
	}
	if q.FinalPrice.IsNegative() {
		return invariant(q, "final price "+q.FinalPrice.String()+" is negative")
	}
	if q.DiscountAmount.IsNegative() {
		return invariant(q, "final price "+q.FinalPrice.String()+" exceeds the undiscounted price "+b.GrossPrice.String())
	}
	if q.DiscountPercentage < 0 || q.DiscountPercentage > 100 {
		return invariant(q, "discount percentage is outside [0,100]")
	}
	if !q.FinalPrice.Equal(q.FinalPrice.RoundCents()) {
		return invariant(q, "final price is not rounded to cents")
	}
	return nil
}

func invariant(q *types.PriceQuote, message string) error {
	return errors.Invariant(message).
		WithContext("category", string(q.Category)).
		WithContext("tier", string(q.Tier)).
		WithContext("duration_months", q.DurationMonths).
		WithContext("final_price", q.FinalPrice.String()).
		WithContext("discount_percentage", q.DiscountPercentage)
}

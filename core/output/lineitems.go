// Package output renders priced quotes into display strings.
// Line items and the promotional sentence are derived from the same quote state
// the composer used, so the text never disagrees with the charged price.
package output

import (
	"fmt"

	"listing-pricing/core/catalog"
	"listing-pricing/core/types"
)

// Formatter produces line items and promotional text for a quote
type Formatter struct {
	catalog *catalog.RateCatalog
}

// NewFormatter creates a formatter over the catalog the quote was priced with
func NewFormatter(c *catalog.RateCatalog) *Formatter {
	return &Formatter{catalog: c}
}

// Format returns the ordered line items and the promotional sentence.
//
// Line order is fixed: base line, charged add-ons in catalog order, the
// discount line (only when the discount rounds above 0%), then the total.
// The base line carries the undiscounted price, so base plus add-ons minus
// the discount always equals the total.
func (f *Formatter) Format(req types.PricingRequest, stats types.UserPostingStats, q *types.PriceQuote) ([]string, string, error) {
	schedule, err := f.catalog.Schedule(q.Category)
	if err != nil {
		return nil, "", err
	}

	lines := []string{baseLine(schedule, q)}
	for _, charge := range q.Breakdown.Addons {
		lines = append(lines, fmt.Sprintf("%s: %s", charge.Label, charge.Fee.Display()))
	}
	if q.DiscountPercentage > 0 {
		lines = append(lines, fmt.Sprintf("Discount (%d%%): -%s", q.DiscountPercentage, q.DiscountAmount.Display()))
	}
	lines = append(lines, "Total: "+q.FinalPrice.Display())

	return lines, f.promotion(schedule, req, stats, q), nil
}

func baseLine(schedule *catalog.RateSchedule, q *types.PriceQuote) string {
	switch q.Override {
	case types.OverrideInviteOnly:
		return fmt.Sprintf("%s %s (%d-month invite-only package, standard rate): %s",
			q.Tier.Label(), schedule.Noun, q.DurationMonths, q.OriginalPrice.Display())
	case types.OverrideRenewal:
		return fmt.Sprintf("Renewal (%s, standard rate): %s", schedule.DisplayName, q.OriginalPrice.Display())
	case types.OverrideFirstPost:
		return fmt.Sprintf("First %s free (%s, normally %s/month): %s",
			schedule.Noun, monthsLabel(q.DurationMonths), q.Breakdown.ListUnitPrice.Display(), types.ZeroMoney.Display())
	default:
		return fmt.Sprintf("%s %s × %s: %s",
			q.Tier.Label(), schedule.Noun, monthsLabel(q.DurationMonths), q.Breakdown.Subtotal.Display())
	}
}

// promotion picks the first matching message:
// invite-only, first post with nationwide, first post, referral, renewal, category default.
func (f *Formatter) promotion(schedule *catalog.RateSchedule, req types.PricingRequest, stats types.UserPostingStats, q *types.PriceQuote) string {
	switch {
	case q.Override == types.OverrideInviteOnly:
		return fmt.Sprintf("Invite-only %s: a full year of premium placement for %s, %d%% below the standard rate.",
			q.Tier.Label(), q.FinalPrice.Display(), q.DiscountPercentage)
	case q.FirstPostApplied && req.IsNationwide:
		return fmt.Sprintf("Your first %s is free. Go nationwide for just %s.", schedule.Noun, q.FinalPrice.Display())
	case q.FirstPostApplied:
		return fmt.Sprintf("Your first %s is on us. Post it free today.", schedule.Noun)
	case q.ReferralApplied:
		pct := f.catalog.ReferralDiscount()
		if stats.ReferralCount > 0 {
			return fmt.Sprintf("Thanks for your %s! Your %s referral discount has been applied.",
				plural(stats.ReferralCount, "referral"), pct)
		}
		return fmt.Sprintf("Your %s referral discount has been applied.", pct)
	case q.Override == types.OverrideRenewal:
		return fmt.Sprintf("Keep your %s live for just %s.", schedule.Noun, q.FinalPrice.Display())
	default:
		return schedule.Promo
	}
}

func monthsLabel(months int) string {
	return plural(months, "month")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Package types - Price quote output
package types

// Override identifies which special case, if any, shaped a quote
type Override string

const (
	// OverrideNone means the normal duration/add-on/referral pipeline ran
	OverrideNone Override = "none"

	// OverrideInviteOnly means the fixed-price invite-only tier was charged
	OverrideInviteOnly Override = "invite_only"

	// OverrideRenewal means only the flat renewal fee was charged
	OverrideRenewal Override = "renewal"

	// OverrideFirstPost means the base unit price was zeroed for a first post.
	// Add-ons and referral still apply.
	OverrideFirstPost Override = "first_post"
)

// AddonCharge is one add-on fee included in a quote
type AddonCharge struct {
	Addon Addon  `json:"addon"`
	Label string `json:"label"`
	Fee   Money  `json:"fee"`
}

// QuoteBreakdown records every intermediate value of the pipeline, unrounded
type QuoteBreakdown struct {
	UnitPrice        Money         `json:"unit_price"`
	ListUnitPrice    Money         `json:"list_unit_price"`
	Subtotal         Money         `json:"subtotal"`
	DurationDiscount Percent       `json:"duration_discount_pct"`
	AutoRenewBonus   Percent       `json:"auto_renew_bonus_pct"`
	AfterDuration    Money         `json:"after_duration"`
	Addons           []AddonCharge `json:"addons,omitempty"`
	AddonTotal       Money         `json:"addon_total"`
	PreReferral      Money         `json:"pre_referral"`
	ReferralDiscount Percent       `json:"referral_discount_pct"`
	GrossPrice       Money         `json:"gross_price"`
	Formula          string        `json:"formula"`
}

// DurationPercent is the combined duration and auto-renew percentage
func (b QuoteBreakdown) DurationPercent() Percent {
	return b.DurationDiscount.Add(b.AutoRenewBonus)
}

// PriceQuote is the computed, displayable and chargeable result for one request
type PriceQuote struct {
	// QuoteID fingerprints inputs, catalog and result. Same inputs give the same ID.
	QuoteID string `json:"quote_id"`

	Category       Category `json:"category"`
	Tier           Tier     `json:"tier"`
	DurationMonths int      `json:"duration_months"`
	Currency       Currency `json:"currency"`

	OriginalPrice      Money `json:"original_price"`
	FinalPrice         Money `json:"final_price"`
	DiscountPercentage int64 `json:"discount_percentage"`
	DiscountAmount     Money `json:"discount_amount"`

	LineItems       []string `json:"line_items"`
	PromotionalText string   `json:"promotional_text"`

	Override         Override       `json:"override"`
	FirstPostApplied bool           `json:"first_post_applied"`
	ReferralApplied  bool           `json:"referral_applied"`
	Breakdown        QuoteBreakdown `json:"breakdown"`

	// CatalogHash identifies the rate catalog the quote was priced against
	CatalogHash string `json:"catalog_hash"`
}

// Package types - Pricing request and user posting history
package types

// PricingRequest is the caller-supplied input for one quote.
//
// Every field is explicit. The zero value of each boolean means "not selected";
// an empty Tier means TierStandard. DurationMonths has no default and must be
// one of the catalog's durations unless an override ignores it.
type PricingRequest struct {
	Category                Category `json:"category" yaml:"category"`
	Tier                    Tier     `json:"tier" yaml:"tier"`
	DurationMonths          int      `json:"duration_months" yaml:"duration_months"`
	AutoRenew               bool     `json:"auto_renew" yaml:"auto_renew"`
	IsRenewal               bool     `json:"is_renewal" yaml:"is_renewal"`
	IsNationwide            bool     `json:"is_nationwide" yaml:"is_nationwide"`
	FastSalePackage         bool     `json:"fast_sale_package" yaml:"fast_sale_package"`
	ShowAtTop               bool     `json:"show_at_top" yaml:"show_at_top"`
	BundleWithOtherCategory bool     `json:"bundle_with_other_category" yaml:"bundle_with_other_category"`
	HasReferrals            bool     `json:"has_referrals" yaml:"has_referrals"`
}

// EffectiveTier returns the tier with the documented default applied
func (r PricingRequest) EffectiveTier() Tier {
	if r.Tier == "" {
		return TierStandard
	}
	return r.Tier
}

// Selected reports whether an add-on is requested
func (r PricingRequest) Selected(a Addon) bool {
	switch a {
	case AddonNationwide:
		return r.IsNationwide
	case AddonFastSale:
		return r.FastSalePackage
	case AddonShowAtTop:
		return r.ShowAtTop
	case AddonBundle:
		return r.BundleWithOtherCategory
	}
	return false
}

// SelectedAddons returns the requested add-ons in canonical order
func (r PricingRequest) SelectedAddons() []Addon {
	var out []Addon
	for _, a := range AllAddons {
		if r.Selected(a) {
			out = append(out, a)
		}
	}
	return out
}

// WithAddon returns a copy of r with add-on a set to on
func (r PricingRequest) WithAddon(a Addon, on bool) PricingRequest {
	switch a {
	case AddonNationwide:
		r.IsNationwide = on
	case AddonFastSale:
		r.FastSalePackage = on
	case AddonShowAtTop:
		r.ShowAtTop = on
	case AddonBundle:
		r.BundleWithOtherCategory = on
	}
	return r
}

// UserPostingStats is a read-only snapshot of a user's history, supplied by
// the profile store. It may be stale; callers re-fetch it before checkout.
type UserPostingStats struct {
	// PostCounts holds prior posts per category. Missing categories count as zero.
	PostCounts map[Category]int `json:"post_counts" yaml:"posts"`

	// ReferralCount is the number of successful referrals
	ReferralCount int `json:"referral_count" yaml:"referrals"`
}

// PostCount returns the number of prior posts in a category
func (s UserPostingStats) PostCount(c Category) int {
	return s.PostCounts[c]
}

// IsFirstPost reports whether the user has never posted in the category
func (s UserPostingStats) IsFirstPost(c Category) bool {
	return s.PostCount(c) <= 0
}

// HasReferralCredit reports whether the user has at least one referral
func (s UserPostingStats) HasReferralCredit() bool {
	return s.ReferralCount > 0
}

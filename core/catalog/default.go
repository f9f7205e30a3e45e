// Package catalog - Canonical marketplace rates
// One internally consistent schedule. Older per-category tables disagreed on
// the Premium and Gold rates; these values supersede all of them.
package catalog

import (
	"listing-pricing/core/types"
)

var usd = types.MustMoney

// CanonicalDurations is the shared duration schedule: 1→0%, 3→10%, 6→15%, 12→20%,
// plus 5% for auto-renewing one-month listings.
func CanonicalDurations() DurationSchedule {
	return DurationSchedule{
		Discounts: map[int]types.Percent{
			1:  types.NewPercent(0),
			3:  types.NewPercent(10),
			6:  types.NewPercent(15),
			12: types.NewPercent(20),
		},
		AutoRenewBonus:  types.NewPercent(5),
		AutoRenewMonths: 1,
	}
}

// CanonicalSchedules returns the four category schedules
func CanonicalSchedules() []RateSchedule {
	return []RateSchedule{
		{
			Category:    types.CategoryJob,
			DisplayName: "Job",
			Noun:        "job post",
			Promo:       "Reach thousands of beauty professionals looking for their next chair.",
			Tiers: map[types.Tier]types.Money{
				types.TierFree:     usd("0.00"),
				types.TierStandard: usd("10.00"),
				types.TierPremium:  usd("20.00"),
				types.TierGold:     usd("35.00"),
			},
			InviteOnly: &InviteOnlyRate{
				Tier:          types.TierDiamond,
				Price:         usd("999.99"),
				Reference:     usd("1799.88"),
				TermMonths:    12,
				ChargedAddons: []types.Addon{types.AddonNationwide},
			},
			Renewal: RenewalRate{Fee: usd("7.00"), Reference: usd("10.00")},
			Addons: []AddonRate{
				{Addon: types.AddonNationwide, Label: "Nationwide visibility", Fee: usd("5.00")},
				{Addon: types.AddonShowAtTop, Label: "Top placement", Fee: usd("15.00")},
				{Addon: types.AddonBundle, Label: "Cross-category bundle", Fee: usd("10.00")},
			},
		},
		{
			Category:    types.CategorySalonForSale,
			DisplayName: "Salon for Sale",
			Noun:        "salon listing",
			Promo:       "Put your salon in front of serious buyers across the industry.",
			Tiers: map[types.Tier]types.Money{
				types.TierStandard: usd("25.00"),
			},
			Renewal: RenewalRate{Fee: usd("10.00"), Reference: usd("25.00")},
			Addons: []AddonRate{
				{Addon: types.AddonNationwide, Label: "Nationwide visibility", Fee: usd("15.00")},
				{Addon: types.AddonFastSale, Label: "Fast-sale promotion", Fee: usd("30.00")},
				{Addon: types.AddonShowAtTop, Label: "Top placement", Fee: usd("20.00")},
				{Addon: types.AddonBundle, Label: "Cross-category bundle", Fee: usd("10.00")},
			},
		},
		{
			Category:    types.CategoryBoothRental,
			DisplayName: "Booth Rental",
			Noun:        "booth rental listing",
			Promo:       "Fill your open booth with qualified stylists in your area.",
			Tiers: map[types.Tier]types.Money{
				types.TierStandard: usd("12.00"),
			},
			Renewal: RenewalRate{Fee: usd("5.00"), Reference: usd("12.00")},
			Addons: []AddonRate{
				{Addon: types.AddonNationwide, Label: "Nationwide visibility", Fee: usd("8.00")},
				{Addon: types.AddonShowAtTop, Label: "Top placement", Fee: usd("10.00")},
				{Addon: types.AddonBundle, Label: "Cross-category bundle", Fee: usd("6.00")},
			},
		},
		{
			Category:    types.CategorySupply,
			DisplayName: "Supply Listing",
			Noun:        "supply listing",
			Promo:       "Sell your beauty supplies directly to salons and professionals.",
			Tiers: map[types.Tier]types.Money{
				types.TierStandard: usd("9.00"),
			},
			Renewal: RenewalRate{Fee: usd("8.00"), Reference: usd("15.00")},
			Addons: []AddonRate{
				{Addon: types.AddonNationwide, Label: "Nationwide visibility", Fee: usd("6.00")},
				{Addon: types.AddonFastSale, Label: "Fast-sale promotion", Fee: usd("12.00")},
				{Addon: types.AddonShowAtTop, Label: "Top placement", Fee: usd("8.00")},
				{Addon: types.AddonBundle, Label: "Cross-category bundle", Fee: usd("5.00")},
			},
		},
	}
}

// Default returns the canonical catalog in USD with a 20% referral discount
func Default() *RateCatalog {
	return MustNew(types.CurrencyUSD, CanonicalDurations(), types.NewPercent(20), CanonicalSchedules()...)
}

// Package types defines the values that flow through the pricing pipeline.
package types

import (
	"fmt"
	"strings"
)

// Category is a listing category. Each category has its own rate schedule.
type Category string

const (
	CategoryJob          Category = "job"
	CategorySalonForSale Category = "salon_for_sale"
	CategoryBoothRental  Category = "booth_rental"
	CategorySupply       Category = "supply_listing"
)

// AllCategories lists every category in canonical order
var AllCategories = []Category{
	CategoryJob,
	CategorySalonForSale,
	CategoryBoothRental,
	CategorySupply,
}

var categoryAliases = map[string]Category{
	"job":            CategoryJob,
	"salon":          CategorySalonForSale,
	"salon_for_sale": CategorySalonForSale,
	"booth":          CategoryBoothRental,
	"booth_rental":   CategoryBoothRental,
	"supply":         CategorySupply,
	"supply_listing": CategorySupply,
}

// ParseCategory accepts canonical names and short aliases ("salon", "booth", "supply")
func ParseCategory(s string) (Category, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if c, ok := categoryAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown listing category %q", s)
}

// IsValid reports whether c is one of the closed set of categories
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation
func (c Category) String() string {
	return string(c)
}

// Tier is a named pricing plan within a category
type Tier string

const (
	TierFree     Tier = "free"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
	TierGold     Tier = "gold"
	TierDiamond  Tier = "diamond"
)

// AllTiers lists every tier name in ascending order
var AllTiers = []Tier{TierFree, TierStandard, TierPremium, TierGold, TierDiamond}

// ParseTier parses a tier name. Empty input yields TierStandard.
func ParseTier(s string) (Tier, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return TierStandard, nil
	}
	for _, t := range AllTiers {
		if string(t) == key {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown pricing tier %q", s)
}

// Label returns the display name, e.g. "Premium"
func (t Tier) Label() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// String returns the string representation
func (t Tier) String() string {
	return string(t)
}

// Addon is an optional flat-fee feature layered onto a listing
type Addon string

const (
	AddonNationwide Addon = "nationwide"
	AddonFastSale   Addon = "fast_sale"
	AddonShowAtTop  Addon = "show_at_top"
	AddonBundle     Addon = "bundle"
)

// AllAddons lists every add-on in canonical order
var AllAddons = []Addon{AddonNationwide, AddonFastSale, AddonShowAtTop, AddonBundle}

// ParseAddon parses an add-on name
func ParseAddon(s string) (Addon, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, a := range AllAddons {
		if string(a) == key {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown add-on %q", s)
}

// String returns the string representation
func (a Addon) String() string {
	return string(a)
}

// Package catalog - Authoritative listing rate catalog
// Holds per-category rate schedules and the shared duration schedule.
// A RateCatalog is immutable once built and is injected into the engine.
package catalog

import (
	"listing-pricing/core/determinism"
	"listing-pricing/core/types"
	"listing-pricing/internal/errors"
)

// InviteOnlyRate is a fixed-price tier that bypasses normal computation
type InviteOnlyRate struct {
	// Tier is the invite-only tier name, e.g. diamond
	Tier types.Tier

	// Price is charged once per term regardless of duration or auto-renew
	Price types.Money

	// Reference is a theoretical list price, used only to display a discount
	Reference types.Money

	// TermMonths is the length of the fixed term
	TermMonths int

	// ChargedAddons are the add-ons still billed on top of Price.
	// Every other add-on is included in the package.
	ChargedAddons []types.Addon
}

// Charges reports whether an add-on is billed on top of the fixed price
func (r InviteOnlyRate) Charges(a types.Addon) bool {
	for _, c := range r.ChargedAddons {
		if c == a {
			return true
		}
	}
	return false
}

// RenewalRate is the flat fee charged to renew an existing listing
type RenewalRate struct {
	Fee       types.Money
	Reference types.Money
}

// AddonRate is the flat fee for one add-on within a category
type AddonRate struct {
	Addon types.Addon
	Label string
	Fee   types.Money
}

// RateSchedule is one category's row-set. Schedules are authored independently;
// fees are not proportional across categories.
type RateSchedule struct {
	Category types.Category

	// DisplayName is e.g. "Booth Rental"
	DisplayName string

	// Noun is the listing noun used in copy, e.g. "booth rental listing"
	Noun string

	// Promo is the category's generic promotional sentence
	Promo string

	// Tiers maps each selectable tier to its monthly base rate
	Tiers map[types.Tier]types.Money

	// InviteOnly is optional
	InviteOnly *InviteOnlyRate

	Renewal RenewalRate

	// Addons are the offered add-ons in display order
	Addons []AddonRate
}

// Addon returns the rate for an add-on, if offered
func (s *RateSchedule) Addon(a types.Addon) (AddonRate, bool) {
	for _, r := range s.Addons {
		if r.Addon == a {
			return r, true
		}
	}
	return AddonRate{}, false
}

func (s RateSchedule) clone() *RateSchedule {
	out := s
	out.Tiers = make(map[types.Tier]types.Money, len(s.Tiers))
	for k, v := range s.Tiers {
		out.Tiers[k] = v
	}
	if s.InviteOnly != nil {
		inv := *s.InviteOnly
		inv.ChargedAddons = append([]types.Addon(nil), s.InviteOnly.ChargedAddons...)
		out.InviteOnly = &inv
	}
	out.Addons = append([]AddonRate(nil), s.Addons...)
	return &out
}

// DurationSchedule maps allowed durations to percentage discounts
type DurationSchedule struct {
	// Discounts maps duration in months to its discount
	Discounts map[int]types.Percent

	// AutoRenewBonus is added to the duration discount when auto-renew is on
	// and the duration equals AutoRenewMonths
	AutoRenewBonus  types.Percent
	AutoRenewMonths int
}

// Months returns the allowed durations in ascending order
func (d DurationSchedule) Months() []int {
	return determinism.SortedInts(d.Discounts)
}

func (d DurationSchedule) clone() DurationSchedule {
	out := d
	out.Discounts = make(map[int]types.Percent, len(d.Discounts))
	for k, v := range d.Discounts {
		out.Discounts[k] = v
	}
	return out
}

// RateCatalog is the immutable set of schedules the engine prices against
type RateCatalog struct {
	currency  types.Currency
	durations DurationSchedule
	referral  types.Percent
	schedules map[types.Category]*RateSchedule
	hash      determinism.ContentHash
}

// New validates and freezes a catalog. Inputs are copied; later changes to
// them do not affect the catalog.
func New(currency types.Currency, durations DurationSchedule, referral types.Percent, schedules ...RateSchedule) (*RateCatalog, error) {
	c := &RateCatalog{
		currency:  currency,
		durations: durations.clone(),
		referral:  referral,
		schedules: make(map[types.Category]*RateSchedule, len(schedules)),
	}

	var problems []error
	for _, s := range schedules {
		if _, dup := c.schedules[s.Category]; dup {
			problems = append(problems, errors.Newf(errors.TypeCatalog, "%s: duplicate rate schedule", s.Category))
			continue
		}
		c.schedules[s.Category] = s.clone()
	}
	problems = append(problems, c.Validate(DefaultValidationRules())...)
	if len(problems) > 0 {
		return nil, errors.Catalog("invalid rate catalog", joinProblems(problems))
	}

	c.hash = determinism.ComputeHash(c.canonical())
	return c, nil
}

// MustNew is New for catalogs known to be valid
func MustNew(currency types.Currency, durations DurationSchedule, referral types.Percent, schedules ...RateSchedule) *RateCatalog {
	c, err := New(currency, durations, referral, schedules...)
	if err != nil {
		panic(err)
	}
	return c
}

// Currency returns the catalog currency
func (c *RateCatalog) Currency() types.Currency {
	return c.currency
}

// Hash returns the catalog content hash
func (c *RateCatalog) Hash() determinism.ContentHash {
	return c.hash
}

// Durations returns a copy of the duration schedule
func (c *RateCatalog) Durations() DurationSchedule {
	return c.durations.clone()
}

// ReferralDiscount returns the flat referral discount
func (c *RateCatalog) ReferralDiscount() types.Percent {
	return c.referral
}

// Categories returns the priced categories in canonical order
func (c *RateCatalog) Categories() []types.Category {
	var out []types.Category
	for _, cat := range types.AllCategories {
		if _, ok := c.schedules[cat]; ok {
			out = append(out, cat)
		}
	}
	return out
}

// Schedule returns a copy of a category's schedule
func (c *RateCatalog) Schedule(category types.Category) (*RateSchedule, error) {
	s, err := c.schedule(category)
	if err != nil {
		return nil, err
	}
	return s.clone(), nil
}

func (c *RateCatalog) schedule(category types.Category) (*RateSchedule, error) {
	s, ok := c.schedules[category]
	if !ok {
		return nil, errors.Newf(errors.TypeInput, "category %q has no rate schedule", category).
			WithContext("category", string(category))
	}
	return s, nil
}

// BaseRate returns the monthly base price of a selectable tier.
// Invite-only tiers have no monthly rate; see InviteOnly.
func (c *RateCatalog) BaseRate(category types.Category, tier types.Tier) (types.Money, error) {
	s, err := c.schedule(category)
	if err != nil {
		return types.Money{}, err
	}
	rate, ok := s.Tiers[tier]
	if !ok {
		return types.Money{}, errors.UnknownTier(string(category), string(tier))
	}
	return rate, nil
}

// IsInviteOnly reports whether tier is the category's invite-only tier
func (c *RateCatalog) IsInviteOnly(category types.Category, tier types.Tier) bool {
	s, ok := c.schedules[category]
	return ok && s.InviteOnly != nil && s.InviteOnly.Tier == tier
}

// InviteOnly returns the fixed-price rate for an invite-only tier
func (c *RateCatalog) InviteOnly(category types.Category, tier types.Tier) (InviteOnlyRate, error) {
	s, err := c.schedule(category)
	if err != nil {
		return InviteOnlyRate{}, err
	}
	if s.InviteOnly == nil || s.InviteOnly.Tier != tier {
		return InviteOnlyRate{}, errors.UnknownTier(string(category), string(tier))
	}
	return *s.clone().InviteOnly, nil
}

// AddonFee returns the flat fee of an add-on within a category
func (c *RateCatalog) AddonFee(category types.Category, addon types.Addon) (AddonRate, error) {
	s, err := c.schedule(category)
	if err != nil {
		return AddonRate{}, err
	}
	rate, ok := s.Addon(addon)
	if !ok {
		return AddonRate{}, errors.UnsupportedAddon(string(category), string(addon))
	}
	return rate, nil
}

// Renewal returns the category's renewal rate
func (c *RateCatalog) Renewal(category types.Category) (RenewalRate, error) {
	s, err := c.schedule(category)
	if err != nil {
		return RenewalRate{}, err
	}
	return s.Renewal, nil
}

// RenewalFlatFee returns the flat fee charged for a renewal
func (c *RateCatalog) RenewalFlatFee(category types.Category) (types.Money, error) {
	r, err := c.Renewal(category)
	if err != nil {
		return types.Money{}, err
	}
	return r.Fee, nil
}

// canonical serializes the catalog in a fixed order for hashing
func (c *RateCatalog) canonical() []byte {
	fields := []string{
		determinism.KV("currency", c.currency),
		determinism.KV("referral", c.referral.Decimal().String()),
		determinism.KV("auto_renew", c.durations.AutoRenewBonus.Decimal().String()),
		determinism.KV("auto_renew_months", c.durations.AutoRenewMonths),
	}
	for _, m := range c.durations.Months() {
		fields = append(fields, determinism.KV("duration", m), c.durations.Discounts[m].Decimal().String())
	}
	for _, cat := range c.Categories() {
		s := c.schedules[cat]
		fields = append(fields, determinism.KV("category", cat), s.DisplayName, s.Noun, s.Promo)
		for _, tier := range determinism.SortedKeys(s.Tiers) {
			fields = append(fields, determinism.KV("tier", tier), s.Tiers[tier].Decimal().String())
		}
		if inv := s.InviteOnly; inv != nil {
			fields = append(fields,
				determinism.KV("invite_only", inv.Tier),
				inv.Price.Decimal().String(),
				inv.Reference.Decimal().String(),
				determinism.KV("term", inv.TermMonths),
				determinism.KV("charged", inv.ChargedAddons),
			)
		}
		fields = append(fields, "renewal", s.Renewal.Fee.Decimal().String(), s.Renewal.Reference.Decimal().String())
		for _, a := range s.Addons {
			fields = append(fields, determinism.KV("addon", a.Addon), a.Label, a.Fee.Decimal().String())
		}
	}
	return determinism.Canonical(fields...)
}

// Package catalog - Catalog validation
// Structural checks only. Combined discounts at or above 100% are not rejected
// here; the price composer's invariant guard reports those at quote time.
package catalog

import (
	stderrors "errors"
	"fmt"

	"listing-pricing/core/determinism"
	"listing-pricing/core/types"
)

// ValidationRule is a rate schedule validation rule
type ValidationRule func(*RateSchedule) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateIdentity,
		validateTiers,
		validateInviteOnly,
		validateRenewal,
		validateAddons,
	}
}

// Validate checks the catalog-wide settings and every schedule against rules
func (c *RateCatalog) Validate(rules []ValidationRule) []error {
	var problems []error

	if c.currency == "" {
		problems = append(problems, fmt.Errorf("currency is required"))
	}
	if c.referral.IsNegative() {
		problems = append(problems, fmt.Errorf("referral discount %s is negative", c.referral))
	}
	if len(c.durations.Discounts) == 0 {
		problems = append(problems, fmt.Errorf("duration schedule is empty"))
	}
	for _, months := range c.durations.Months() {
		pct := c.durations.Discounts[months]
		if months <= 0 {
			problems = append(problems, fmt.Errorf("duration of %d months is not positive", months))
		}
		if pct.IsNegative() {
			problems = append(problems, fmt.Errorf("duration discount for %d months is negative", months))
		}
	}
	if c.durations.AutoRenewBonus.IsNegative() {
		problems = append(problems, fmt.Errorf("auto-renew bonus %s is negative", c.durations.AutoRenewBonus))
	}
	if len(c.schedules) == 0 {
		problems = append(problems, fmt.Errorf("catalog has no rate schedules"))
	}

	for _, cat := range sortedScheduleKeys(c.schedules) {
		for _, rule := range rules {
			if err := rule(c.schedules[cat]); err != nil {
				problems = append(problems, fmt.Errorf("%s: %w", cat, err))
			}
		}
	}

	return problems
}

func sortedScheduleKeys(m map[types.Category]*RateSchedule) []types.Category {
	var out []types.Category
	for _, cat := range types.AllCategories {
		if _, ok := m[cat]; ok {
			out = append(out, cat)
		}
	}
	for _, cat := range determinism.SortedKeys(m) {
		if !cat.IsValid() {
			out = append(out, cat)
		}
	}
	return out
}

func joinProblems(problems []error) error {
	return stderrors.Join(problems...)
}

func validateIdentity(s *RateSchedule) error {
	if !s.Category.IsValid() {
		return fmt.Errorf("unknown category")
	}
	if s.DisplayName == "" || s.Noun == "" {
		return fmt.Errorf("display name and noun are required")
	}
	return nil
}

func validateTiers(s *RateSchedule) error {
	if len(s.Tiers) == 0 && s.InviteOnly == nil {
		return fmt.Errorf("no tiers offered")
	}
	for _, tier := range determinism.SortedKeys(s.Tiers) {
		rate := s.Tiers[tier]
		if _, err := types.ParseTier(string(tier)); err != nil || tier == "" {
			return fmt.Errorf("unknown tier %q", tier)
		}
		if rate.IsNegative() {
			return fmt.Errorf("tier %s has negative rate %s", tier, rate)
		}
	}
	return nil
}

func validateInviteOnly(s *RateSchedule) error {
	inv := s.InviteOnly
	if inv == nil {
		return nil
	}
	if _, listed := s.Tiers[inv.Tier]; listed {
		return fmt.Errorf("invite-only tier %s is also a selectable tier", inv.Tier)
	}
	if inv.Price.IsNegative() || inv.Reference.IsNegative() {
		return fmt.Errorf("invite-only tier %s has a negative amount", inv.Tier)
	}
	if inv.TermMonths <= 0 {
		return fmt.Errorf("invite-only tier %s needs a positive term", inv.Tier)
	}
	for _, a := range inv.ChargedAddons {
		if _, ok := s.Addon(a); !ok {
			return fmt.Errorf("invite-only tier charges add-on %s that the category does not price", a)
		}
	}
	return nil
}

func validateRenewal(s *RateSchedule) error {
	if s.Renewal.Fee.IsNegative() || s.Renewal.Reference.IsNegative() {
		return fmt.Errorf("renewal has a negative amount")
	}
	return nil
}

func validateAddons(s *RateSchedule) error {
	seen := make(map[types.Addon]bool, len(s.Addons))
	for _, a := range s.Addons {
		if _, err := types.ParseAddon(string(a.Addon)); err != nil {
			return err
		}
		if seen[a.Addon] {
			return fmt.Errorf("add-on %s listed twice", a.Addon)
		}
		seen[a.Addon] = true
		if a.Fee.IsNegative() {
			return fmt.Errorf("add-on %s has negative fee %s", a.Addon, a.Fee)
		}
		if a.Label == "" {
			return fmt.Errorf("add-on %s needs a label", a.Addon)
		}
	}
	return nil
}

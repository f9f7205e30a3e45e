// Package pricing implements the listing price pipeline: override resolution,
// duration discounts, add-on aggregation and final composition.
package pricing

import (
	"listing-pricing/core/catalog"
	"listing-pricing/core/types"
	"listing-pricing/internal/errors"
)

// DurationResolver maps a duration to its discount
type DurationResolver struct {
	schedule catalog.DurationSchedule
}

// NewDurationResolver creates a resolver over a duration schedule
func NewDurationResolver(schedule catalog.DurationSchedule) *DurationResolver {
	return &DurationResolver{schedule: schedule}
}

// DurationDiscountPercent returns the discount for a duration.
// Durations outside the schedule are rejected.
func (r *DurationResolver) DurationDiscountPercent(months int) (types.Percent, error) {
	pct, ok := r.schedule.Discounts[months]
	if !ok {
		return types.Percent{}, errors.InvalidDuration(months, r.schedule.Months())
	}
	return pct, nil
}

// AutoRenewBonusPercent returns the auto-renew bonus, which only applies to
// the schedule's auto-renew duration (one month in the canonical catalog)
func (r *DurationResolver) AutoRenewBonusPercent(months int, autoRenew bool) types.Percent {
	if autoRenew && months == r.schedule.AutoRenewMonths {
		return r.schedule.AutoRenewBonus
	}
	return types.ZeroPercent
}

// CombinedPercent sums the duration discount and the auto-renew bonus
func (r *DurationResolver) CombinedPercent(months int, autoRenew bool) (duration, bonus types.Percent, err error) {
	duration, err = r.DurationDiscountPercent(months)
	if err != nil {
		return types.Percent{}, types.Percent{}, err
	}
	return duration, r.AutoRenewBonusPercent(months, autoRenew), nil
}

package pricing

import (
	"listing-pricing/core/catalog"
	"listing-pricing/core/types"
	"listing-pricing/internal/errors"
)

// AddonAggregator sums category-scoped add-on fees
type AddonAggregator struct {
	catalog *catalog.RateCatalog
}

// NewAddonAggregator creates an aggregator over a catalog
func NewAddonAggregator(c *catalog.RateCatalog) *AddonAggregator {
	return &AddonAggregator{catalog: c}
}

// Total sums the fees of every selected add-on. Fees stack without a cap.
// Selecting an add-on the category does not offer is an error.
func (a *AddonAggregator) Total(category types.Category, req types.PricingRequest) (types.Money, []types.AddonCharge, error) {
	schedule, err := a.catalog.Schedule(category)
	if err != nil {
		return types.Money{}, nil, err
	}
	for _, addon := range req.SelectedAddons() {
		if _, ok := schedule.Addon(addon); !ok {
			return types.Money{}, nil, errors.UnsupportedAddon(string(category), string(addon))
		}
	}
	total, charges := sumCharges(schedule, req, func(types.Addon) bool { return true })
	return total, charges, nil
}

// InviteOnlyTotal sums only the add-ons an invite-only tier still charges.
// Everything else is part of the package.
func (a *AddonAggregator) InviteOnlyTotal(category types.Category, req types.PricingRequest, inv catalog.InviteOnlyRate) (types.Money, []types.AddonCharge, error) {
	schedule, err := a.catalog.Schedule(category)
	if err != nil {
		return types.Money{}, nil, err
	}
	total, charges := sumCharges(schedule, req, inv.Charges)
	return total, charges, nil
}

// sumCharges walks the schedule's add-ons in display order
func sumCharges(schedule *catalog.RateSchedule, req types.PricingRequest, include func(types.Addon) bool) (types.Money, []types.AddonCharge) {
	total := types.ZeroMoney
	var charges []types.AddonCharge
	for _, rate := range schedule.Addons {
		if !req.Selected(rate.Addon) || !include(rate.Addon) {
			continue
		}
		charges = append(charges, types.AddonCharge{Addon: rate.Addon, Label: rate.Label, Fee: rate.Fee})
		total = total.Add(rate.Fee)
	}
	return total, charges
}

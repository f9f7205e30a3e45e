package pricing

import (
	"listing-pricing/core/catalog"
	"listing-pricing/core/types"
)

// Resolution is the override resolver's verdict for one request
type Resolution struct {
	Override types.Override

	// UnitPrice is the monthly price fed to the normal pipeline.
	// Zero for a first post.
	UnitPrice types.Money

	// ListUnitPrice is the catalog monthly rate before any first-post override
	ListUnitPrice types.Money

	// FixedPrice and Reference are set when the override short-circuits
	FixedPrice types.Money
	Reference  types.Money

	// InviteOnly is set for the invite-only override
	InviteOnly *catalog.InviteOnlyRate
}

// OverrideResolver detects the special cases that replace normal computation.
//
// Precedence is declared, not inferred:
//  1. invite-only fixed tier (Diamond)
//  2. renewal flat fee
//  3. first post in the category: unit price forced to zero, add-ons still charged
type OverrideResolver struct {
	catalog *catalog.RateCatalog
}

// NewOverrideResolver creates a resolver over a catalog
func NewOverrideResolver(c *catalog.RateCatalog) *OverrideResolver {
	return &OverrideResolver{catalog: c}
}

// Resolve picks the override for a request. The tier is validated unless a
// renewal makes it irrelevant.
func (r *OverrideResolver) Resolve(req types.PricingRequest, stats types.UserPostingStats) (Resolution, error) {
	category := req.Category
	tier := req.EffectiveTier()

	// Diamond is checked before renewal, so Diamond on a category without
	// an invite-only tier fails even when renewing.
	if tier == types.TierDiamond || r.catalog.IsInviteOnly(category, tier) {
		inv, err := r.catalog.InviteOnly(category, tier)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{
			Override:   types.OverrideInviteOnly,
			FixedPrice: inv.Price,
			Reference:  inv.Reference,
			InviteOnly: &inv,
		}, nil
	}

	if req.IsRenewal {
		renewal, err := r.catalog.Renewal(category)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{
			Override:   types.OverrideRenewal,
			FixedPrice: renewal.Fee,
			Reference:  renewal.Reference,
		}, nil
	}

	rate, err := r.catalog.BaseRate(category, tier)
	if err != nil {
		return Resolution{}, err
	}

	if stats.IsFirstPost(category) {
		return Resolution{
			Override:      types.OverrideFirstPost,
			UnitPrice:     types.ZeroMoney,
			ListUnitPrice: rate,
		}, nil
	}

	return Resolution{
		Override:      types.OverrideNone,
		UnitPrice:     rate,
		ListUnitPrice: rate,
	}, nil
}

package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"listing-pricing/core/catalog"
	"listing-pricing/core/types"
	"listing-pricing/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// Composer turns a request into a priced quote (without display text).
//
// The pipeline order is fixed:
//
//	unitPrice     = override-resolved monthly rate (0 on a first post)
//	subtotal      = unitPrice × months
//	afterDuration = subtotal − subtotal × (durationPct + autoRenewPct) / 100
//	preReferral   = afterDuration + addonTotal
//	finalPrice    = preReferral × (1 − referralPct/100) when referral applies
//
// finalPrice is rounded to cents once, at the end.
type Composer struct {
	catalog   *catalog.RateCatalog
	durations *DurationResolver
	overrides *OverrideResolver
	addons    *AddonAggregator
}

// NewComposer wires the pipeline stages over one catalog
func NewComposer(c *catalog.RateCatalog) *Composer {
	return &Composer{
		catalog:   c,
		durations: NewDurationResolver(c.Durations()),
		overrides: NewOverrideResolver(c),
		addons:    NewAddonAggregator(c),
	}
}

// Compose prices a request. The returned quote has no line items or
// promotional text yet.
func (c *Composer) Compose(req types.PricingRequest, stats types.UserPostingStats) (*types.PriceQuote, error) {
	if !req.Category.IsValid() {
		return nil, errors.Newf(errors.TypeInput, "unknown listing category %q", req.Category)
	}

	res, err := c.overrides.Resolve(req, stats)
	if err != nil {
		return nil, err
	}

	var quote *types.PriceQuote
	switch res.Override {
	case types.OverrideInviteOnly:
		quote, err = c.composeInviteOnly(req, res)
	case types.OverrideRenewal:
		quote, err = c.composeRenewal(req, res)
	default:
		quote, err = c.composeStandard(req, stats, res)
	}
	if err != nil {
		return nil, err
	}

	if err := CheckInvariants(quote); err != nil {
		return nil, err
	}
	return quote, nil
}

func (c *Composer) composeStandard(req types.PricingRequest, stats types.UserPostingStats, res Resolution) (*types.PriceQuote, error) {
	months := req.DurationMonths
	durationPct, bonusPct, err := c.durations.CombinedPercent(months, req.AutoRenew)
	if err != nil {
		return nil, err
	}

	subtotal := res.UnitPrice.MulInt(months)
	combined := durationPct.Add(bonusPct)
	afterDuration := subtotal.Sub(subtotal.Percent(combined))

	addonTotal, charges, err := c.addons.Total(req.Category, req)
	if err != nil {
		return nil, err
	}
	preReferral := afterDuration.Add(addonTotal)

	referralApplied := req.HasReferrals || stats.HasReferralCredit()
	referralPct := types.ZeroPercent
	final := preReferral
	if referralApplied {
		referralPct = c.catalog.ReferralDiscount()
		final = preReferral.Mul(decimal.NewFromInt(1).Sub(referralPct.Fraction()))
	}
	final = final.RoundCents()

	b := types.QuoteBreakdown{
		UnitPrice:        res.UnitPrice,
		ListUnitPrice:    res.ListUnitPrice,
		Subtotal:         subtotal,
		DurationDiscount: durationPct,
		AutoRenewBonus:   bonusPct,
		AfterDuration:    afterDuration,
		Addons:           charges,
		AddonTotal:       addonTotal,
		PreReferral:      preReferral,
		ReferralDiscount: referralPct,
		Formula: fmt.Sprintf("(%s × %d) − %s + add-ons %s − referral %s = %s",
			res.UnitPrice, months, combined, addonTotal, referralPct, final),
	}

	q := c.newQuote(req, res.Override, months)
	q.FirstPostApplied = res.Override == types.OverrideFirstPost
	q.ReferralApplied = referralApplied
	c.settle(q, subtotal, final, b)
	return q, nil
}

// composeInviteOnly charges the fixed term price plus the add-ons the tier
// still bills. Duration, auto-renew and referral are ignored.
func (c *Composer) composeInviteOnly(req types.PricingRequest, res Resolution) (*types.PriceQuote, error) {
	inv := res.InviteOnly
	addonTotal, charges, err := c.addons.InviteOnlyTotal(req.Category, req, *inv)
	if err != nil {
		return nil, err
	}
	final := res.FixedPrice.Add(addonTotal).RoundCents()

	b := types.QuoteBreakdown{
		UnitPrice:        res.FixedPrice,
		Subtotal:         res.FixedPrice,
		DurationDiscount: types.ZeroPercent,
		AutoRenewBonus:   types.ZeroPercent,
		AfterDuration:    res.FixedPrice,
		Addons:           charges,
		AddonTotal:       addonTotal,
		PreReferral:      res.FixedPrice.Add(addonTotal),
		ReferralDiscount: types.ZeroPercent,
		Formula:          fmt.Sprintf("fixed %s + add-ons %s = %s", res.FixedPrice, addonTotal, final),
	}

	q := c.newQuote(req, res.Override, inv.TermMonths)
	c.settle(q, res.Reference, final, b)
	return q, nil
}

// composeRenewal charges only the flat renewal fee
func (c *Composer) composeRenewal(req types.PricingRequest, res Resolution) (*types.PriceQuote, error) {
	final := res.FixedPrice.RoundCents()

	b := types.QuoteBreakdown{
		UnitPrice:        res.FixedPrice,
		Subtotal:         res.FixedPrice,
		DurationDiscount: types.ZeroPercent,
		AutoRenewBonus:   types.ZeroPercent,
		AfterDuration:    res.FixedPrice,
		AddonTotal:       types.ZeroMoney,
		PreReferral:      res.FixedPrice,
		ReferralDiscount: types.ZeroPercent,
		Formula:          fmt.Sprintf("flat renewal fee %s", final),
	}

	q := c.newQuote(req, res.Override, 0)
	c.settle(q, res.Reference, final, b)
	return q, nil
}

func (c *Composer) newQuote(req types.PricingRequest, override types.Override, months int) *types.PriceQuote {
	return &types.PriceQuote{
		Category:       req.Category,
		Tier:           req.EffectiveTier(),
		DurationMonths: months,
		Currency:       c.catalog.Currency(),
		Override:       override,
		CatalogHash:    c.catalog.Hash().Hex(),
	}
}

// settle fills the reported prices. The discount is measured against the
// gross price (original plus add-ons), so it equals
// (original − final) / original whenever no add-on is selected.
func (c *Composer) settle(q *types.PriceQuote, original, final types.Money, b types.QuoteBreakdown) {
	gross := original.Add(b.AddonTotal)
	discount := gross.Sub(final).RoundCents()

	var pct int64
	if !gross.IsZero() {
		pct = discount.Decimal().Div(gross.Decimal()).Mul(hundred).Round(0).IntPart()
	}

	b.GrossPrice = gross
	q.OriginalPrice = original
	q.FinalPrice = final
	q.DiscountAmount = discount
	q.DiscountPercentage = pct
	q.Breakdown = b
}

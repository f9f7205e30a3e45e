// Package engine provides the API-primary pricing engine.
// CLI and checkout callers are thin wrappers around ComputeQuote.
package engine

import (
	"go.uber.org/zap"

	"listing-pricing/core/catalog"
	"listing-pricing/core/determinism"
	"listing-pricing/core/output"
	"listing-pricing/core/pricing"
	"listing-pricing/core/types"
	"listing-pricing/internal/errors"
	"listing-pricing/internal/logging"
)

// Engine is the primary API for listing price quotes.
// It holds only immutable state and is safe for concurrent use.
type Engine struct {
	catalog   *catalog.RateCatalog
	composer  *pricing.Composer
	formatter *output.Formatter
	logger    *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine over an explicitly injected catalog
func New(c *catalog.RateCatalog, opts ...Option) *Engine {
	e := &Engine{
		catalog:   c,
		composer:  pricing.NewComposer(c),
		formatter: output.NewFormatter(c),
		logger:    logging.Named("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewDefault creates an engine over the canonical catalog
func NewDefault(opts ...Option) *Engine {
	return New(catalog.Default(), opts...)
}

// Catalog returns the catalog quotes are priced against
func (e *Engine) Catalog() *catalog.RateCatalog {
	return e.catalog
}

// ComputeQuote prices a request and renders its display text.
// The same inputs always produce the same quote, including its QuoteID.
func (e *Engine) ComputeQuote(category types.Category, req types.PricingRequest, stats types.UserPostingStats) (*types.PriceQuote, error) {
	quote, err := e.compute(category, req, stats)
	if err != nil {
		e.logger.Warn("quote rejected",
			zap.String("category", string(category)),
			zap.String("tier", string(req.EffectiveTier())),
			zap.Int("duration_months", req.DurationMonths),
			zap.String("error_type", string(errors.TypeOf(err))),
			zap.Error(err))
		return nil, err
	}

	e.logger.Debug("quote computed",
		zap.String("quote_id", quote.QuoteID),
		zap.String("category", string(quote.Category)),
		zap.String("tier", string(quote.Tier)),
		zap.String("override", string(quote.Override)),
		zap.String("final_price", quote.FinalPrice.String()),
		zap.Int64("discount_pct", quote.DiscountPercentage))
	return quote, nil
}

func (e *Engine) compute(category types.Category, req types.PricingRequest, stats types.UserPostingStats) (*types.PriceQuote, error) {
	switch {
	case req.Category == "":
		req.Category = category
	case req.Category != category:
		return nil, errors.Newf(errors.TypeInput, "request category %q does not match %q", req.Category, category).
			WithContext("category", string(category))
	}

	quote, err := e.composer.Compose(req, stats)
	if err != nil {
		return nil, err
	}

	quote.LineItems, quote.PromotionalText, err = e.formatter.Format(req, stats, quote)
	if err != nil {
		return nil, err
	}

	quote.QuoteID = fingerprint(quote)
	return quote, nil
}

// Verify recomputes a quote and checks that it still carries quoteID.
// Checkout calls this with freshly fetched stats; a mismatch means the
// preview is stale (for example a first post completed in between).
func (e *Engine) Verify(quoteID string, category types.Category, req types.PricingRequest, stats types.UserPostingStats) (*types.PriceQuote, error) {
	quote, err := e.ComputeQuote(category, req, stats)
	if err != nil {
		return nil, err
	}
	if quote.QuoteID != quoteID {
		e.logger.Warn("stale quote",
			zap.String("expected", quoteID),
			zap.String("actual", quote.QuoteID),
			zap.String("final_price", quote.FinalPrice.String()))
		return quote, errors.QuoteMismatch(quoteID, quote.QuoteID).
			WithContext("final_price", quote.FinalPrice.String())
	}
	return quote, nil
}

// fingerprint covers the quote as priced, not the raw request. Inputs an
// override ignores (months and referral on invite-only, tier and add-ons on
// a renewal, auto-renew past one month) cannot change the id.
func fingerprint(q *types.PriceQuote) string {
	tier := string(q.Tier)
	if q.Override == types.OverrideRenewal {
		tier = ""
	}
	fields := []string{
		determinism.KV("category", q.Category),
		determinism.KV("override", q.Override),
		determinism.KV("tier", tier),
		determinism.KV("months", q.DurationMonths),
		determinism.KV("duration_pct", q.Breakdown.DurationDiscount),
		determinism.KV("auto_renew_pct", q.Breakdown.AutoRenewBonus),
		determinism.KV("first_post", q.FirstPostApplied),
		determinism.KV("referral", q.ReferralApplied),
	}
	for _, charge := range q.Breakdown.Addons {
		fields = append(fields, determinism.KV("addon", charge.Addon))
	}
	fields = append(fields,
		determinism.KV("catalog", q.CatalogHash),
		determinism.KV("final", q.FinalPrice.String()),
	)
	return determinism.Fingerprint(fields...).String()
}

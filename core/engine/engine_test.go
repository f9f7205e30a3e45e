package engine

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"listing-pricing/core/catalog"
	"listing-pricing/core/types"
	"listing-pricing/internal/errors"
)

var returning = types.UserPostingStats{
	PostCounts: map[types.Category]int{types.CategoryJob: 2, types.CategorySupply: 1},
}

func TestComputeQuote(t *testing.T) {
	e := NewDefault(WithLogger(zap.NewNop()))

	q, err := e.ComputeQuote(types.CategoryJob, types.PricingRequest{DurationMonths: 3, HasReferrals: true}, returning)
	require.NoError(t, err)

	assert.Equal(t, types.CategoryJob, q.Category)
	assert.Equal(t, types.TierStandard, q.Tier)
	assert.Equal(t, "21.60", q.FinalPrice.String())
	assert.Equal(t, "30.00", q.OriginalPrice.String())
	assert.Equal(t, "Total: $21.60", q.LineItems[len(q.LineItems)-1])
	assert.NotEmpty(t, q.PromotionalText)
	assert.Equal(t, e.Catalog().Hash().Hex(), q.CatalogHash)

	id, err := uuid.Parse(q.QuoteID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), id.Version())
}

func TestCategoryMismatch(t *testing.T) {
	e := NewDefault(WithLogger(zap.NewNop()))

	_, err := e.ComputeQuote(types.CategoryJob, types.PricingRequest{Category: types.CategorySupply, DurationMonths: 1}, returning)
	assert.Equal(t, errors.TypeInput, errors.TypeOf(err))

	q, err := e.ComputeQuote(types.CategorySupply, types.PricingRequest{Category: types.CategorySupply, DurationMonths: 1}, returning)
	require.NoError(t, err)
	assert.Equal(t, "9.00", q.FinalPrice.String())
}

func TestQuoteIDIsStable(t *testing.T) {
	e := NewDefault(WithLogger(zap.NewNop()))
	req := types.PricingRequest{DurationMonths: 6, IsNationwide: true}

	a, err := e.ComputeQuote(types.CategoryJob, req, returning)
	require.NoError(t, err)
	b, err := NewDefault(WithLogger(zap.NewNop())).ComputeQuote(types.CategoryJob, req, returning)
	require.NoError(t, err)
	assert.Equal(t, a.QuoteID, b.QuoteID)

	// a different post count in the same state does not change the id
	more := types.UserPostingStats{PostCounts: map[types.Category]int{types.CategoryJob: 40}}
	c, err := e.ComputeQuote(types.CategoryJob, req, more)
	require.NoError(t, err)
	assert.Equal(t, a.QuoteID, c.QuoteID)

	// any change in input does
	req.ShowAtTop = true
	d, err := e.ComputeQuote(types.CategoryJob, req, returning)
	require.NoError(t, err)
	assert.NotEqual(t, a.QuoteID, d.QuoteID)
}

func TestConcurrentQuotesAreIdentical(t *testing.T) {
	e := NewDefault(WithLogger(zap.NewNop()))
	req := types.PricingRequest{Category: types.CategorySupply, DurationMonths: 12, FastSalePackage: true, HasReferrals: true}

	want, err := e.ComputeQuote(types.CategorySupply, req, returning)
	require.NoError(t, err)

	const workers = 16
	results := make([]*types.PriceQuote, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q, err := e.ComputeQuote(types.CategorySupply, req, returning)
			if err == nil {
				results[i] = q
			}
		}(i)
	}
	wg.Wait()

	for _, q := range results {
		require.NotNil(t, q)
		assert.Equal(t, want, q)
	}
}

func TestVerify(t *testing.T) {
	e := NewDefault(WithLogger(zap.NewNop()))
	req := types.PricingRequest{DurationMonths: 1, IsNationwide: true}

	// previewed as a first post
	preview, err := e.ComputeQuote(types.CategoryJob, req, types.UserPostingStats{})
	require.NoError(t, err)
	assert.Equal(t, "5.00", preview.FinalPrice.String())

	_, err = e.Verify(preview.QuoteID, types.CategoryJob, req, types.UserPostingStats{})
	require.NoError(t, err)

	// the first post completed before checkout
	current, err := e.Verify(preview.QuoteID, types.CategoryJob, req, returning)
	require.Error(t, err)
	assert.Equal(t, errors.TypeQuoteMismatch, errors.TypeOf(err))
	require.NotNil(t, current)
	assert.Equal(t, "15.00", current.FinalPrice.String())
}

func TestVerifyIgnoresInputsTheOverrideDiscards(t *testing.T) {
	e := NewDefault(WithLogger(zap.NewNop()))

	t.Run("invite-only", func(t *testing.T) {
		req := types.PricingRequest{Tier: types.TierDiamond, DurationMonths: 1}
		preview, err := e.ComputeQuote(types.CategoryJob, req, returning)
		require.NoError(t, err)
		assert.Equal(t, 12, preview.DurationMonths)

		for _, variant := range []types.PricingRequest{
			{Tier: types.TierDiamond, DurationMonths: 12},
			{Tier: types.TierDiamond, DurationMonths: 3, AutoRenew: true},
			{Tier: types.TierDiamond, DurationMonths: 6, HasReferrals: true},
			{Tier: types.TierDiamond, DurationMonths: 1, ShowAtTop: true, BundleWithOtherCategory: true},
		} {
			q, err := e.Verify(preview.QuoteID, types.CategoryJob, variant, returning)
			require.NoError(t, err, "%+v", variant)
			assert.Equal(t, preview.FinalPrice, q.FinalPrice)
		}

		// nationwide is still billed, so it changes the quote
		req.IsNationwide = true
		_, err = e.Verify(preview.QuoteID, types.CategoryJob, req, returning)
		assert.Equal(t, errors.TypeQuoteMismatch, errors.TypeOf(err))
	})

	t.Run("renewal", func(t *testing.T) {
		preview, err := e.ComputeQuote(types.CategoryJob, types.PricingRequest{IsRenewal: true, DurationMonths: 1}, returning)
		require.NoError(t, err)

		variant := types.PricingRequest{
			IsRenewal:      true,
			Tier:           types.TierGold,
			DurationMonths: 6,
			IsNationwide:   true,
			HasReferrals:   true,
		}
		q, err := e.Verify(preview.QuoteID, types.CategoryJob, variant, returning)
		require.NoError(t, err)
		assert.Equal(t, "7.00", q.FinalPrice.String())
	})

	t.Run("auto-renew past one month", func(t *testing.T) {
		preview, err := e.ComputeQuote(types.CategoryJob, types.PricingRequest{DurationMonths: 3}, returning)
		require.NoError(t, err)

		_, err = e.Verify(preview.QuoteID, types.CategoryJob, types.PricingRequest{DurationMonths: 3, AutoRenew: true}, returning)
		require.NoError(t, err)

		// on a one-month listing auto-renew changes the price
		preview, err = e.ComputeQuote(types.CategoryJob, types.PricingRequest{DurationMonths: 1}, returning)
		require.NoError(t, err)
		_, err = e.Verify(preview.QuoteID, types.CategoryJob, types.PricingRequest{DurationMonths: 1, AutoRenew: true}, returning)
		assert.Equal(t, errors.TypeQuoteMismatch, errors.TypeOf(err))
	})
}

func TestSyntheticCatalogViolation(t *testing.T) {
	durations := catalog.CanonicalDurations()
	durations.Discounts[1] = types.NewPercent(90)
	durations.AutoRenewBonus = types.NewPercent(15)
	c, err := catalog.New(types.CurrencyUSD, durations, types.NewPercent(20), catalog.CanonicalSchedules()...)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	e := New(c, WithLogger(zap.New(core)))

	_, err = e.ComputeQuote(types.CategoryJob, types.PricingRequest{DurationMonths: 1, AutoRenew: true}, returning)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInvariant))

	rejected := logs.FilterMessage("quote rejected").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, zapcore.WarnLevel, rejected[0].Level)
	assert.Equal(t, string(errors.TypeInvariant), rejected[0].ContextMap()["error_type"])

	// without auto-renew the same catalog still prices
	q, err := e.ComputeQuote(types.CategoryJob, types.PricingRequest{DurationMonths: 1}, returning)
	require.NoError(t, err)
	assert.Equal(t, "1.00", q.FinalPrice.String())
	assert.Equal(t, 1, logs.FilterMessage("quote computed").Len())
}

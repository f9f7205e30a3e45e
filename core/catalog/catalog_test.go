package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-pricing/core/types"
	"listing-pricing/internal/errors"
)

func TestDefaultCatalogLookups(t *testing.T) {
	c := Default()

	rate, err := c.BaseRate(types.CategoryJob, types.TierStandard)
	require.NoError(t, err)
	assert.Equal(t, "10.00", rate.String())

	fee, err := c.AddonFee(types.CategoryJob, types.AddonNationwide)
	require.NoError(t, err)
	assert.Equal(t, "5.00", fee.Fee.String())

	renewal, err := c.RenewalFlatFee(types.CategoryBoothRental)
	require.NoError(t, err)
	assert.Equal(t, "5.00", renewal.String())

	renewal, err = c.RenewalFlatFee(types.CategorySupply)
	require.NoError(t, err)
	assert.Equal(t, "8.00", renewal.String())

	assert.Equal(t, []int{1, 3, 6, 12}, c.Durations().Months())
	assert.Equal(t, types.AllCategories, c.Categories())
}

func TestUnknownTierForCategory(t *testing.T) {
	c := Default()

	_, err := c.BaseRate(types.CategoryBoothRental, types.TierGold)
	assert.True(t, errors.IsType(err, errors.TypeUnknownTier))

	// the invite-only tier has no monthly rate
	_, err = c.BaseRate(types.CategoryJob, types.TierDiamond)
	assert.True(t, errors.IsType(err, errors.TypeUnknownTier))

	_, err = c.InviteOnly(types.CategorySalonForSale, types.TierDiamond)
	assert.True(t, errors.IsType(err, errors.TypeUnknownTier))

	inv, err := c.InviteOnly(types.CategoryJob, types.TierDiamond)
	require.NoError(t, err)
	assert.Equal(t, "999.99", inv.Price.String())
	assert.True(t, inv.Charges(types.AddonNationwide))
	assert.False(t, inv.Charges(types.AddonShowAtTop))
}

func TestAddonNotOffered(t *testing.T) {
	_, err := Default().AddonFee(types.CategoryJob, types.AddonFastSale)
	assert.True(t, errors.IsType(err, errors.TypeUnsupportedAddon))
}

func TestFeesDifferPerCategory(t *testing.T) {
	c := Default()
	seen := map[string]types.Category{}
	for _, cat := range c.Categories() {
		fee, err := c.AddonFee(cat, types.AddonNationwide)
		require.NoError(t, err)
		if other, dup := seen[fee.Fee.String()]; dup {
			t.Errorf("nationwide fee %s shared by %s and %s", fee.Fee, other, cat)
		}
		seen[fee.Fee.String()] = cat
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	schedules := CanonicalSchedules()
	c := MustNew(types.CurrencyUSD, CanonicalDurations(), types.NewPercent(20), schedules...)
	before := c.Hash()

	schedules[0].Tiers[types.TierStandard] = types.MustMoney("1.00")
	s, err := c.Schedule(types.CategoryJob)
	require.NoError(t, err)
	s.Tiers[types.TierStandard] = types.MustMoney("2.00")
	d := c.Durations()
	d.Discounts[3] = types.NewPercent(90)

	rate, err := c.BaseRate(types.CategoryJob, types.TierStandard)
	require.NoError(t, err)
	assert.Equal(t, "10.00", rate.String())
	assert.True(t, c.Durations().Discounts[3].Equal(types.NewPercent(10)))
	assert.Equal(t, before, c.Hash())
}

func TestHashTracksContent(t *testing.T) {
	assert.Equal(t, Default().Hash(), Default().Hash())

	schedules := CanonicalSchedules()
	schedules[2].Renewal.Fee = types.MustMoney("6.00")
	changed := MustNew(types.CurrencyUSD, CanonicalDurations(), types.NewPercent(20), schedules...)
	assert.NotEqual(t, Default().Hash(), changed.Hash())
}

func TestValidationRejectsBadSchedules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s []RateSchedule, d *DurationSchedule)
	}{
		{"negative tier rate", func(s []RateSchedule, _ *DurationSchedule) {
			s[1].Tiers[types.TierStandard] = types.MustMoney("-1")
		}},
		{"negative add-on fee", func(s []RateSchedule, _ *DurationSchedule) {
			s[2].Addons[0].Fee = types.MustMoney("-0.01")
		}},
		{"duplicate add-on", func(s []RateSchedule, _ *DurationSchedule) {
			s[3].Addons = append(s[3].Addons, s[3].Addons[0])
		}},
		{"invite-only tier also selectable", func(s []RateSchedule, _ *DurationSchedule) {
			s[0].Tiers[types.TierDiamond] = types.MustMoney("99")
		}},
		{"invite-only charges unpriced add-on", func(s []RateSchedule, _ *DurationSchedule) {
			s[0].InviteOnly.ChargedAddons = []types.Addon{types.AddonFastSale}
		}},
		{"empty duration schedule", func(_ []RateSchedule, d *DurationSchedule) {
			d.Discounts = nil
		}},
		{"non-positive duration", func(_ []RateSchedule, d *DurationSchedule) {
			d.Discounts[0] = types.NewPercent(0)
		}},
		{"duplicate category", func(s []RateSchedule, _ *DurationSchedule) {
			s[1].Category = types.CategoryJob
		}},
		{"missing noun", func(s []RateSchedule, _ *DurationSchedule) {
			s[2].Noun = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedules := CanonicalSchedules()
			durations := CanonicalDurations()
			tt.mutate(schedules, &durations)

			_, err := New(types.CurrencyUSD, durations, types.NewPercent(20), schedules...)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeCatalog))
		})
	}
}

func TestValidationAllowsLargeDiscounts(t *testing.T) {
	durations := CanonicalDurations()
	durations.Discounts[12] = types.NewPercent(120)

	_, err := New(types.CurrencyUSD, durations, types.NewPercent(20), CanonicalSchedules()...)
	assert.NoError(t, err)
}

func TestValidationReportsTiersInOrder(t *testing.T) {
	var first string
	for i := 0; i < 20; i++ {
		schedules := CanonicalSchedules()
		schedules[0].Tiers[types.TierPremium] = types.MustMoney("-2")
		schedules[0].Tiers[types.TierGold] = types.MustMoney("-3")

		_, err := New(types.CurrencyUSD, CanonicalDurations(), types.NewPercent(20), schedules...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "job: tier gold has negative rate")
		assert.NotContains(t, err.Error(), "tier premium")

		if i == 0 {
			first = err.Error()
			continue
		}
		assert.Equal(t, first, err.Error())
	}
}

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyArithmeticIsExact(t *testing.T) {
	price := MustMoney("0.10")
	total := ZeroMoney
	for i := 0; i < 10; i++ {
		total = total.Add(price)
	}
	assert.True(t, total.Equal(MustMoney("1")))
	assert.Equal(t, "1.00", total.String())
}

func TestMoneyRoundCentsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "2.13", MustMoney("2.125").RoundCents().String())
	assert.Equal(t, "2.12", MustMoney("2.1249").RoundCents().String())
	assert.Equal(t, "-2.13", MustMoney("-2.125").RoundCents().String())
}

func TestMoneyDisplay(t *testing.T) {
	assert.Equal(t, "$27.00", MustMoney("27").Display())
	assert.Equal(t, "-$3.50", MustMoney("-3.5").Display())
}

func TestMoneyPercent(t *testing.T) {
	assert.True(t, MustMoney("30").Percent(NewPercent(10)).Equal(MustMoney("3")))

	p, err := ParsePercent("12.5")
	require.NoError(t, err)
	assert.True(t, MustMoney("100").Percent(p).Equal(MustMoney("12.5")))
}

func TestPercentAddIsAdditive(t *testing.T) {
	combined := NewPercent(10).Add(NewPercent(5))
	assert.True(t, combined.Equal(NewPercent(15)))
	assert.Equal(t, "15%", combined.String())
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(MustMoney("21.6"))
	require.NoError(t, err)
	assert.Equal(t, `"21.60"`, string(data))

	data, err = json.Marshal(MustMoney("0.4500"))
	require.NoError(t, err)
	assert.Equal(t, `"0.45"`, string(data))

	assert.Equal(t, "2.125", MustMoney("2.125").Exact())

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"1004.99"`), &m))
	assert.Equal(t, "1004.99", m.String())
}

func TestParseCategoryAliases(t *testing.T) {
	cases := map[string]Category{
		"job":          CategoryJob,
		"Salon":        CategorySalonForSale,
		"booth-rental": CategoryBoothRental,
		"supply":       CategorySupply,
	}
	for in, want := range cases {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseCategory("barbershop")
	assert.Error(t, err)
}

func TestParseTierDefaultsToStandard(t *testing.T) {
	tier, err := ParseTier("")
	require.NoError(t, err)
	assert.Equal(t, TierStandard, tier)

	_, err = ParseTier("platinum")
	assert.Error(t, err)
	assert.Equal(t, "Diamond", TierDiamond.Label())
}

func TestRequestSelectedAddonsInCanonicalOrder(t *testing.T) {
	req := PricingRequest{ShowAtTop: true, IsNationwide: true}
	assert.Equal(t, []Addon{AddonNationwide, AddonShowAtTop}, req.SelectedAddons())

	req = req.WithAddon(AddonNationwide, false).WithAddon(AddonBundle, true)
	assert.Equal(t, []Addon{AddonShowAtTop, AddonBundle}, req.SelectedAddons())
	assert.Equal(t, TierStandard, req.EffectiveTier())
}

func TestStatsFirstPost(t *testing.T) {
	stats := UserPostingStats{PostCounts: map[Category]int{CategoryJob: 2}, ReferralCount: 1}

	assert.False(t, stats.IsFirstPost(CategoryJob))
	assert.True(t, stats.IsFirstPost(CategoryBoothRental))
	assert.True(t, stats.HasReferralCredit())
	assert.True(t, UserPostingStats{}.IsFirstPost(CategoryJob))
}

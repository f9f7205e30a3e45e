package hcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-pricing/core/catalog"
	"listing-pricing/core/types"
	"listing-pricing/internal/errors"
)

func TestLoadCanonicalRateFile(t *testing.T) {
	c, err := LoadFile("testdata/rates.hcl")
	require.NoError(t, err)

	assert.Equal(t, catalog.Default().Hash(), c.Hash())
	assert.Equal(t, types.AllCategories, c.Categories())

	rate, err := c.BaseRate(types.CategoryJob, types.TierGold)
	require.NoError(t, err)
	assert.Equal(t, "35.00", rate.String())

	inv, err := c.InviteOnly(types.CategoryJob, types.TierDiamond)
	require.NoError(t, err)
	assert.Equal(t, []types.Addon{types.AddonNationwide}, inv.ChargedAddons)
	assert.Equal(t, 12, inv.TermMonths)

	schedule, err := c.Schedule(types.CategorySalonForSale)
	require.NoError(t, err)
	require.Len(t, schedule.Addons, 4)
	assert.Equal(t, types.AddonFastSale, schedule.Addons[1].Addon)
}

func TestParsePartialCatalog(t *testing.T) {
	src := `
currency                  = "USD"
referral_discount_percent = "10"

durations {
  discount {
    months  = 1
    percent = "0"
  }
}

category "booth-rental" {
  display_name = "Booth Rental"
  noun         = "booth"

  tier "standard" {
    monthly = "12.5"
  }

  renewal {
    fee       = "4"
    reference = "12.5"
  }
}
`
	c, err := Parse([]byte(src), "partial.hcl")
	require.NoError(t, err)

	assert.Equal(t, []types.Category{types.CategoryBoothRental}, c.Categories())
	assert.True(t, c.Durations().AutoRenewBonus.IsZero())
	assert.Equal(t, "10%", c.ReferralDiscount().String())

	_, err = c.BaseRate(types.CategoryJob, types.TierStandard)
	assert.Equal(t, errors.TypeInput, errors.TypeOf(err))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "syntax",
			src:  `currency = `,
		},
		{
			name: "missing durations block",
			src: `currency = "USD"
referral_discount_percent = "20"`,
		},
		{
			name: "bad amount",
			src: `currency = "USD"
referral_discount_percent = "20"
durations {
  discount {
    months  = 1
    percent = "0"
  }
}
category "job" {
  display_name = "Job"
  noun         = "job post"
  tier "standard" {
    monthly = "ten dollars"
  }
  renewal {
    fee       = "7"
    reference = "10"
  }
}`,
		},
		{
			name: "unknown category",
			src: `currency = "USD"
referral_discount_percent = "20"
durations {
  discount {
    months  = 1
    percent = "0"
  }
}
category "kennel" {
  display_name = "Kennel"
  noun         = "kennel"
  tier "standard" {
    monthly = "10"
  }
  renewal {
    fee       = "7"
    reference = "10"
  }
}`,
		},
		{
			name: "negative fee fails validation",
			src: `currency = "USD"
referral_discount_percent = "20"
durations {
  discount {
    months  = 1
    percent = "0"
  }
}
category "job" {
  display_name = "Job"
  noun         = "job post"
  tier "standard" {
    monthly = "10"
  }
  renewal {
    fee       = "-7"
    reference = "10"
  }
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), tt.name+".hcl")
			require.Error(t, err)
			assert.Equal(t, errors.TypeCatalog, errors.TypeOf(err))
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFile("testdata/absent.hcl")
	assert.Equal(t, errors.TypeCatalog, errors.TypeOf(err))
}

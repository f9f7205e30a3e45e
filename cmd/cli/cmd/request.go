// Package cmd - request flags shared by quote and verify
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"listing-pricing/adapters/stats"
	"listing-pricing/core/types"
	"listing-pricing/internal/config"
	"listing-pricing/internal/errors"
)

// requestFlags binds one pricing request to command flags
type requestFlags struct {
	category  string
	tier      string
	months    int
	autoRenew bool
	renewal   bool
	addons    map[types.Addon]*bool
	referrals bool

	statsFile     string
	userID        string
	priorPosts    int
	referralCount int
}

func newRequestFlags() *requestFlags {
	return &requestFlags{addons: make(map[types.Addon]*bool)}
}

func (f *requestFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.category, "category", "c", "", "listing category (job, salon, booth, supply)")
	fl.StringVarP(&f.tier, "tier", "t", "standard", "pricing tier")
	fl.IntVarP(&f.months, "months", "m", 1, "duration in months (1, 3, 6, 12)")
	fl.BoolVar(&f.autoRenew, "auto-renew", false, "enable auto-renew")
	fl.BoolVar(&f.renewal, "renewal", false, "price a renewal of an existing listing")
	fl.BoolVar(&f.referrals, "referrals", false, "apply the referral discount")

	f.addons[types.AddonNationwide] = fl.Bool("nationwide", false, "add nationwide visibility")
	f.addons[types.AddonFastSale] = fl.Bool("fast-sale", false, "add the fast-sale promotion")
	f.addons[types.AddonShowAtTop] = fl.Bool("top", false, "add top placement")
	f.addons[types.AddonBundle] = fl.Bool("bundle", false, "add the cross-category bundle")

	fl.StringVar(&f.statsFile, "stats", "", "YAML posting-stats snapshot (default from config)")
	fl.StringVar(&f.userID, "user", "", "user id to look up in the stats snapshot")
	fl.IntVar(&f.priorPosts, "posts", 1, "prior posts in the category when no stats snapshot is used")
	fl.IntVar(&f.referralCount, "referral-count", 0, "referral count when no stats snapshot is used")

	_ = cmd.MarkFlagRequired("category")
}

// request builds the pricing request
func (f *requestFlags) request() (types.Category, types.PricingRequest, error) {
	category, err := types.ParseCategory(f.category)
	if err != nil {
		return "", types.PricingRequest{}, errors.Wrap(errors.TypeInput, "invalid --category", err)
	}
	tier, err := types.ParseTier(f.tier)
	if err != nil {
		return "", types.PricingRequest{}, errors.Wrap(errors.TypeInput, "invalid --tier", err)
	}

	req := types.PricingRequest{
		Category:       category,
		Tier:           tier,
		DurationMonths: f.months,
		AutoRenew:      f.autoRenew,
		IsRenewal:      f.renewal,
		HasReferrals:   f.referrals,
	}
	for _, addon := range types.AllAddons {
		if on := f.addons[addon]; on != nil {
			req = req.WithAddon(addon, *on)
		}
	}
	return category, req, nil
}

// stats returns the user's snapshot, or one built from --posts and
// --referral-count when no user is given
func (f *requestFlags) stats(ctx context.Context, category types.Category) (types.UserPostingStats, error) {
	path := f.statsFile
	if path == "" {
		path = config.Get().Pricing.StatsPath
	}

	if f.userID == "" {
		return types.UserPostingStats{
			PostCounts:    map[types.Category]int{category: f.priorPosts},
			ReferralCount: f.referralCount,
		}, nil
	}
	if path == "" {
		return types.UserPostingStats{}, errors.Input("--user requires --stats or pricing.stats_path")
	}

	var provider stats.Provider = stats.NewFileProvider(path)
	return provider.Stats(ctx, f.userID)
}

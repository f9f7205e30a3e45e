// Package cmd - catalog commands
package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"listing-pricing/core/catalog"
	"listing-pricing/core/types"
)

// catalogCmd groups rate catalog commands
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the rate catalog",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every category's rates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		return printCatalog(cmd.OutOrStdout(), c)
	},
}

var catalogHashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Print the catalog content hash",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), c.Hash().Hex())
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogHashCmd)
}

func printCatalog(out io.Writer, c *catalog.RateCatalog) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Currency:\t%s\n", c.Currency())
	fmt.Fprintf(w, "Referral discount:\t%s\n", c.ReferralDiscount())

	d := c.Durations()
	durations := make([]string, 0, len(d.Discounts))
	for _, m := range d.Months() {
		durations = append(durations, fmt.Sprintf("%d→%s", m, d.Discounts[m]))
	}
	fmt.Fprintf(w, "Durations:\t%s (auto-renew +%s at %d month)\n", strings.Join(durations, ", "), d.AutoRenewBonus, d.AutoRenewMonths)
	fmt.Fprintf(w, "Hash:\t%s\n", c.Hash().Short())

	for _, category := range c.Categories() {
		s, err := c.Schedule(category)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%s (%s)\n", s.DisplayName, category)
		for _, tier := range types.AllTiers {
			if rate, ok := s.Tiers[tier]; ok {
				fmt.Fprintf(w, "  %s\t%s/month\n", tier.Label(), rate.Display())
			}
		}
		if inv := s.InviteOnly; inv != nil {
			fmt.Fprintf(w, "  %s (invite-only)\t%s per %d months, reference %s\n",
				inv.Tier.Label(), inv.Price.Display(), inv.TermMonths, inv.Reference.Display())
		}
		fmt.Fprintf(w, "  Renewal\t%s, reference %s\n", s.Renewal.Fee.Display(), s.Renewal.Reference.Display())
		for _, a := range s.Addons {
			fmt.Fprintf(w, "  + %s\t%s\n", a.Label, a.Fee.Display())
		}
	}
	return w.Flush()
}

// Package cmd - quote command
package cmd

import (
	"github.com/spf13/cobra"

	"listing-pricing/core/output"
	"listing-pricing/core/types"
	"listing-pricing/internal/config"
	"listing-pricing/internal/errors"
)

var (
	quoteFlags    = newRequestFlags()
	outputFormat  string
	showBreakdown bool
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Compute a listing price quote",
	Long: `Compute the price, discount and checkout line items for one listing.

Examples:
  listing-price quote --category job --tier standard --months 3
  listing-price quote --category job --months 3 --referrals
  listing-price quote --category job --tier diamond --nationwide
  listing-price quote --category supply --months 6 --top --format json`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func init() {
	quoteFlags.bind(quoteCmd)
	quoteCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (text, json); default from config")
	quoteCmd.Flags().BoolVar(&showBreakdown, "breakdown", false, "show the pipeline breakdown")
}

func runQuote(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}

	category, req, err := quoteFlags.request()
	if err != nil {
		return err
	}
	stats, err := quoteFlags.stats(cmd.Context(), category)
	if err != nil {
		return err
	}

	quote, err := e.ComputeQuote(category, req, stats)
	if err != nil {
		return err
	}
	return render(cmd, quote)
}

func render(cmd *cobra.Command, quote *types.PriceQuote) error {
	cfg := config.Get()

	format := outputFormat
	if format == "" {
		format = cfg.Output.Format
	}

	renderer, ok := output.DefaultRegistry(showBreakdown || cfg.Output.ShowBreakdown).Get(output.Format(format))
	if !ok {
		return errors.Newf(errors.TypeInput, "unknown output format %q", format)
	}
	return renderer.Render(cmd.OutOrStdout(), quote)
}

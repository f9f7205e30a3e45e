// Package cmd - verify command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyFlags = newRequestFlags()

// verifyCmd re-prices a request and checks it against a previewed quote id
var verifyCmd = &cobra.Command{
	Use:   "verify <quote-id>",
	Short: "Check that a previewed quote still holds",
	Long: `Recompute a quote with current stats and compare its id with the one
shown at preview time. A mismatch means the price changed and the checkout
must be re-confirmed.

Example:
  listing-price verify 2f6c0a1e-... --category job --months 1 --nationwide --stats stats.yaml --user u-123`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyFlags.bind(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}

	category, req, err := verifyFlags.request()
	if err != nil {
		return err
	}
	stats, err := verifyFlags.stats(cmd.Context(), category)
	if err != nil {
		return err
	}

	quote, err := e.Verify(args[0], category, req, stats)
	if err != nil {
		if quote != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "current price is %s (quote %s)\n", quote.FinalPrice.Display(), quote.QuoteID)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "quote %s is valid: %s\n", quote.QuoteID, quote.FinalPrice.Display())
	return nil
}

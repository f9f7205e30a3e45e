// Package cmd provides the CLI commands for listing-price.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cataloghcl "listing-pricing/adapters/catalog/hcl"
	"listing-pricing/core/catalog"
	"listing-pricing/core/engine"
	"listing-pricing/internal/config"
	"listing-pricing/internal/errors"
	"listing-pricing/internal/logging"
)

// version is set at build time
var version = "0.1.0"

var (
	cfgFile     string
	catalogFile string
	verbose     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "listing-price",
	Short: "Quote marketplace listing prices",
	Long: `listing-price computes deterministic listing price quotes.

It applies the rate catalog, duration discounts, first-post and renewal
overrides, add-on fees and referral discounts, and prints the checkout
line items for the result.

Examples:
  listing-price quote --category job --tier standard --months 3
  listing-price quote --category booth --renewal
  listing-price quote --category job --months 1 --nationwide --stats stats.yaml --user u-123
  listing-price catalog show --catalog rates.hcl`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON or YAML)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "HCL rate file (default is the built-in catalog)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadCatalog returns the rate catalog named by --catalog, then the config,
// then the built-in default
func loadCatalog() (*catalog.RateCatalog, error) {
	path := catalogFile
	if path == "" {
		path = config.Get().Pricing.CatalogPath
	}
	if path == "" {
		return catalog.Default(), nil
	}
	return cataloghcl.LoadFile(path)
}

func newEngine() (*engine.Engine, error) {
	c, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	if want := config.Get().Pricing.Currency; want != "" && want != c.Currency() {
		return nil, errors.Newf(errors.TypeConfig, "catalog is priced in %s but config expects %s", c.Currency(), want)
	}
	return engine.New(c, engine.WithLogger(logging.Named("engine"))), nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "listing-price version %s\n", version)
	},
}

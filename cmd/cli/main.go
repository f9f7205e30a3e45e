// Package main is the entry point for the listing-price CLI.
package main

import (
	"os"

	"listing-pricing/cmd/cli/cmd"
	"listing-pricing/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}

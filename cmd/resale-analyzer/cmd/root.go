// Package cmd implements the CLI commands for the resale-analyzer server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "resale-analyzer",
	Short: "Photo-to-price analysis for secondhand items",
	Long: "An API-first service that identifies secondhand items from photos " +
		"via a vision LLM, gathers eBay market data, and derives suggested, " +
		"quick-sale, and premium listing prices.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (defaults apply when omitted)")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

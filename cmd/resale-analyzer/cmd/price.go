package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Joshspeakman/ebay-resale-analyzer/pkg/pricing"
	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
)

var priceCmd = &cobra.Command{
	Use:   "price <snapshot.json>",
	Short: "Derive a price recommendation from a market snapshot file",
	Long: "Runs the pricing engine offline against a JSON market snapshot " +
		"and prints the recommendation. No server or API keys required.",
	Args: cobra.ExactArgs(1),
	RunE: runPrice,
}

func init() {
	rootCmd.AddCommand(priceCmd)
}

func runPrice(cobraCmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0]) //nolint:gosec // path from trusted CLI arg
	if err != nil {
		return fmt.Errorf("reading snapshot file: %w", err)
	}

	var snap domain.MarketSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parsing snapshot JSON: %w", err)
	}

	rec := pricing.CalculateSuggestedPrice(snap)

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding recommendation: %w", err)
	}
	fmt.Fprintln(cobraCmd.OutOrStdout(), string(out))
	return nil
}

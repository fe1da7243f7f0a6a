package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
)

func priceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price <snapshot.json>",
		Short: "Price an already-gathered market snapshot",
		Long: "Sends a JSON market snapshot file to the API server's pricing\n" +
			"endpoint and displays the recommendation. Useful for re-pricing\n" +
			"saved snapshots without repeating the vision and search calls.",
		Example: `  resale price snapshot.json
  resale price snapshot.json --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0]) //nolint:gosec // path from trusted CLI arg
			if err != nil {
				return fmt.Errorf("reading snapshot file: %w", err)
			}

			var snap domain.MarketSnapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				return fmt.Errorf("parsing snapshot JSON: %w", err)
			}

			c := newClient()
			rec, err := c.Price(context.Background(), snap)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(rec)
			}
			return printRecommendation(os.Stdout, rec)
		},
	}
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	var filterOutliers bool

	cmd := &cobra.Command{
		Use:   "stats <price>...",
		Short: "Compute distribution statistics for a set of prices",
		Example: `  resale stats 45 50 48 52 47
  resale stats 45 50 48 52 300 --filter-outliers`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			prices := make([]float64, 0, len(args))
			for _, arg := range args {
				p, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid price %q: %w", arg, err)
				}
				prices = append(prices, p)
			}

			c := newClient()
			result, err := c.Statistics(context.Background(), prices, filterOutliers)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(result)
			}
			return printStatistics(os.Stdout, result)
		},
	}
	cmd.Flags().BoolVar(&filterOutliers, "filter-outliers", false, "remove IQR outliers before computing statistics")

	return cmd
}

package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	var condition string

	cmd := &cobra.Command{
		Use:   "analyze <photo>...",
		Short: "Analyze item photos and get a price recommendation",
		Long: "Uploads one or more photos of a single item to the API server,\n" +
			"which identifies the item, gathers market data, and derives\n" +
			"suggested, quick-sale, and premium listing prices.",
		Example: `  resale analyze front.jpg
  resale analyze front.jpg back.jpg label.jpg --condition good
  resale analyze item.jpg --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			report, err := c.Analyze(context.Background(), args, condition)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(report)
			}
			return printReport(os.Stdout, report)
		},
	}
	cmd.Flags().StringVar(&condition, "condition", "", "item condition (excellent, good, fair, poor)")

	return cmd
}

package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func quotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show the server's search quota status",
		Example: `  resale quota
  resale quota --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			status, err := c.Quota(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(status)
			}
			return printQuota(os.Stdout, status)
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reisraff/angular-filesort/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show CLI version information",
		Long: `Display version information for the ngsort CLI.

Shows the CLI version, build information and the CUE SDK used for config
validation.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), version.Get().String())
			return nil
		},
	}
}

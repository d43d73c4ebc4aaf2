package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yaklabco/diagview/internal/configloader"
)

func newEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables diagview reads",
		Long: `List the DIAGVIEW_* environment variables. They override configuration
files and are overridden by command-line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, v := range configloader.ListEnvVars() {
				if _, err := fmt.Fprintf(w, "%s\t%s\n", v.Name, v.Description); err != nil {
					return fmt.Errorf("write: %w", err)
				}
			}
			return w.Flush()
		},
	}
}

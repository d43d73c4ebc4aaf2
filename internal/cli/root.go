// Package cli provides the Cobra command structure for diagview.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/diagview/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root diagview command with all subcommands.
// Running it without a subcommand opens the interactive panel.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	viewFlags := &viewFlags{}

	rootCmd := &cobra.Command{
		Use:   "diagview [files...]",
		Short: "A problems panel for compiler and linter diagnostics",
		Long: `diagview shows diagnostics from language servers, SARIF producers and
gomdlint as a collapsible problems panel, grouped by file and split into
one tab per severity.

Related locations are listed under the diagnostic that references them.
Clicking an entry opens it in your editor.`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args, viewFlags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// The root command accepts the view flags so "diagview file" works.
	addViewFlags(rootCmd, viewFlags)

	// Add subcommands.
	rootCmd.AddCommand(newViewCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newHitCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newEnvCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

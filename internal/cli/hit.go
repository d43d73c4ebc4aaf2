package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/diagview/pkg/problems"
)

type hitFlags struct {
	panel panelFlags
	line  int
}

func newHitCommand() *cobra.Command {
	flags := &hitFlags{}

	cmd := &cobra.Command{
		Use:   "hit [files...] --line N",
		Short: "Print what a click on a panel line would do",
		Long: `Resolve a click on one flattened line of a severity tab.

Prints "toggle <file>" for a file header, "jump <file>:<line>:<column>" for
a diagnostic or related location (1-based), and "no target: <reason>"
otherwise. Lines are counted from 0 with --collapse applied.

Examples:
  diagview hit --line 3 diagnostics.jsonl
  diagview hit --line 1 --collapse src/a.rs report.sarif`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHit(cmd, args, flags)
		},
	}

	addPanelFlags(cmd, &flags.panel)
	cmd.Flags().IntVarP(&flags.line, "line", "l", 0, "flattened line to click")
	_ = cmd.MarkFlagRequired("line")

	return cmd
}

func runHit(cmd *cobra.Command, args []string, flags *hitFlags) error {
	state, err := openPanel(cmd, args, &flags.panel)
	if err != nil {
		return err
	}

	panel := state.panel
	pos := problems.Point{Y: float64(flags.line) * panel.Metrics.LineHeight}
	action := panel.MouseDown(pos, state.coll, state.store)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, state.sess.styles(out).FormatAction(action))
	return nil
}

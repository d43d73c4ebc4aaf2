package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/diagview/internal/configloader"
	"github.com/yaklabco/diagview/internal/ui/canvas"
	"github.com/yaklabco/diagview/internal/ui/pretty"
	"github.com/yaklabco/diagview/pkg/config"
	"github.com/yaklabco/diagview/pkg/diagnostic"
	"github.com/yaklabco/diagview/pkg/problems"
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 80

type panelFlags struct {
	input    inputFlags
	severity string
	collapse []string
}

func addPanelFlags(cmd *cobra.Command, flags *panelFlags) {
	addInputFlags(cmd, &flags.input)
	cmd.Flags().StringVarP(&flags.severity, "severity", "s", "", "severity tab to show (default: first configured tab)")
	cmd.Flags().StringSliceVar(&flags.collapse, "collapse", nil, "files to show collapsed (workspace-relative or absolute)")
}

// panelState is the state shared by render and hit: one panel and the
// collapse store seeded from --collapse.
type panelState struct {
	sess  *session
	coll  diagnostic.Collection
	panel *problems.Panel
	store *problems.CollapseStore
}

func openPanel(cmd *cobra.Command, args []string, flags *panelFlags) (*panelState, error) {
	cliCfg := &config.Config{}
	flags.input.toConfig(cmd, cliCfg)

	sess, err := newSession(cmd, args, cliCfg)
	if err != nil {
		return nil, err
	}

	sev := diagnostic.SeverityError
	if tabs := configloader.Severities(sess.cfg); len(tabs) > 0 {
		sev = tabs[0]
	}
	if flags.severity != "" {
		sev, err = diagnostic.ParseSeverity(flags.severity)
		if err != nil {
			return nil, fmt.Errorf("invalid --severity: %w", err)
		}
	}

	coll, err := sess.load(commandContext(cmd))
	if err != nil {
		return nil, err
	}

	store := problems.NewCollapseStore()
	for _, path := range flags.collapse {
		store.Apply(problems.ToggleCollapse{Path: sess.absPath(path)})
	}

	return &panelState{
		sess:  sess,
		coll:  coll,
		panel: problems.NewPanel(sev, sess.metrics(), sess.cfg.Workspace, sess.logger),
		store: store,
	}, nil
}

type renderFlags struct {
	panel     panelFlags
	from      int
	rows      int
	hoverLine int
	width     int
	summary   bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Print the problems panel once",
		Long: `Paint one severity tab of the problems panel to stdout.

The whole panel is printed unless --from and --rows select a window of
rows. --hover-line highlights the entry under that flattened line, the way
the interactive panel does under the pointer.

Examples:
  diagview render diagnostics.jsonl
  diagview render -s warning --collapse src/main.rs report.sarif
  diagview render --from 20 --rows 10 --hover-line 24 report.sarif`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	addPanelFlags(cmd, &flags.panel)
	cmd.Flags().IntVar(&flags.from, "from", 0, "first content row to print")
	cmd.Flags().IntVar(&flags.rows, "rows", 0, "number of rows to print (0 = to the end)")
	cmd.Flags().IntVar(&flags.hoverLine, "hover-line", -1, "flattened line to highlight as hovered")
	cmd.Flags().IntVar(&flags.width, "width", 0, "output width in cells (default: terminal width)")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a one-line summary to stderr")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	state, err := openPanel(cmd, args, &flags.panel)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	width := flags.width
	if width <= 0 {
		width = terminalWidth(out)
	}

	panel := state.panel
	panel.Layout(state.coll, state.store, problems.Size{Width: float64(width)})
	total := int(panel.ContentHeight())

	from := max(flags.from, 0)
	rows := flags.rows
	if rows <= 0 {
		rows = total - from
	}
	rows = max(rows, 0)

	if flags.hoverLine >= 0 {
		panel.MouseMove(problems.Point{Y: float64(flags.hoverLine) * panel.Metrics.LineHeight})
	}

	styles := state.sess.styles(out)
	surface := canvas.New(width, rows, from, state.sess.iconSet(), styles)
	panel.Paint(surface, state.coll, state.store, surface.Visible())

	if rows > 0 {
		fmt.Fprintln(out, surface.Render())
	}

	if flags.summary {
		printSummary(cmd.ErrOrStderr(), state)
	}

	return nil
}

// printSummary writes the whole-collection count, then the files of the
// rendered tab with their diagnostic counts.
func printSummary(w io.Writer, state *panelState) {
	styles := state.sess.styles(w)
	fmt.Fprint(w, styles.FormatSummaryOneLine(pretty.CountCollection(state.coll)))

	idx := problems.BuildIndex(state.coll, state.panel.Severity)
	if idx.Len() == 0 {
		return
	}
	fmt.Fprintf(w, "%s: %d\n", styles.FormatSeverity(state.panel.Severity), idx.Len())
	for _, g := range idx {
		fmt.Fprintf(w, "  %s\n", styles.FormatFileHeader(state.sess.relPath(g.Path), len(g.Diagnostics)))
	}
}

// terminalWidth returns the width of out when it is a terminal.
func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

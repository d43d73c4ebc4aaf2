package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/diagview/internal/configloader"
	"github.com/yaklabco/diagview/internal/logging"
	"github.com/yaklabco/diagview/internal/tui"
	"github.com/yaklabco/diagview/internal/ui/pretty"
	"github.com/yaklabco/diagview/internal/watch"
	"github.com/yaklabco/diagview/pkg/config"
)

type viewFlags struct {
	input      inputFlags
	severities []string
	editor     string
	logFile    string
	watch      bool
}

func newViewCommand() *cobra.Command {
	flags := &viewFlags{}

	cmd := &cobra.Command{
		Use:   "view [files...]",
		Short: "Browse diagnostics in an interactive panel",
		Long:  viewLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args, flags)
		},
	}

	addViewFlags(cmd, flags)

	return cmd
}

const viewLongDescription = `Open a full-screen problems panel with one tab per severity.

Inputs are LSP publishDiagnostics payloads, SARIF logs or gomdlint JSON
reports. With no files, diagnostics are read from stdin.

Click a file header to collapse or expand it. Click a diagnostic or a
related location to open it in the configured editor; without an editor
the location is printed and the panel exits.

Examples:
  diagview view diagnostics.jsonl          # Browse LSP diagnostics
  diagview view --watch report.sarif       # Reload when the report changes
  golangci-lint run --output.sarif.path=stdout | diagview
  diagview view --editor "code -g {path}:{line}:{column}" report.sarif`

func addViewFlags(cmd *cobra.Command, flags *viewFlags) {
	addInputFlags(cmd, &flags.input)
	cmd.Flags().StringSliceVarP(&flags.severities, "severities", "s", nil, "panel tabs in order (default: error,warning)")
	cmd.Flags().StringVar(&flags.editor, "editor", "", "editor command with {path}, {line} and {column} placeholders")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "write logs to this file while the panel is open")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "reload when input files change")
}

func (f *viewFlags) toConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	f.input.toConfig(cmd, cfg)

	changed := cmd.Flags().Changed
	if changed("severities") {
		cfg.Severities = f.severities
	}
	if changed("editor") {
		cfg.Editor.Command = f.editor
	}
	if changed("log-file") {
		cfg.LogFile = f.logFile
	}
	cfg.Watch = f.watch
	return cfg
}

func runView(cmd *cobra.Command, args []string, flags *viewFlags) error {
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	sess, err := newSession(cmd, args, flags.toConfig(cmd))
	if err != nil {
		return err
	}

	// The panel owns the terminal, so logs go to a file or nowhere.
	logger, closer, err := panelLogger(sess.cfg)
	if err != nil {
		return err
	}
	defer closer.Close()
	sess.logger = logger

	coll, err := sess.load(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	model := tui.New(coll, tui.Options{
		Severities:    configloader.Severities(sess.cfg),
		Metrics:       sess.metrics(),
		WorkspaceRoot: sess.cfg.Workspace,
		Icons:         sess.iconSet(),
		Styles:        sess.styles(out),
		Editor:        sess.cfg.Editor.Command,
		Reload:        sess.load,
		Logger:        logger,
	})

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
	if sess.usesStdin() {
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	program := tea.NewProgram(model, programOpts...)

	if sess.cfg.Watch {
		if err := startWatcher(ctx, sess, program, logger); err != nil {
			return err
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run panel: %w", err)
	}

	if jump := model.Jump(); jump != nil {
		styles := pretty.NewStyles(pretty.IsColorEnabled(string(sess.cfg.Color), out))
		fmt.Fprintln(out, styles.FormatLocation(jump.Path, jump.Position))
	}

	return nil
}

// panelLogger returns the logger used while the panel is open.
func panelLogger(cfg *config.Config) (*log.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		return logging.Discard(), nopCloser{}, nil
	}
	logger, closer, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func startWatcher(ctx context.Context, sess *session, program *tea.Program, logger *log.Logger) error {
	paths := sess.watchable()
	if len(paths) == 0 {
		logger.Warn("nothing to watch: input is stdin")
		return nil
	}

	watcher, err := watch.New(paths, watch.DefaultDebounce, logger)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	go func() {
		defer watcher.Close()
		if err := watcher.Run(ctx, func() { program.Send(tui.ReloadMsg{}) }); err != nil {
			logger.Error("watcher stopped", logging.FieldError, err)
		}
	}()

	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

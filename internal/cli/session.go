package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/diagview/internal/configloader"
	"github.com/yaklabco/diagview/internal/logging"
	"github.com/yaklabco/diagview/internal/ui/icons"
	"github.com/yaklabco/diagview/internal/ui/pretty"
	"github.com/yaklabco/diagview/pkg/config"
	"github.com/yaklabco/diagview/pkg/diagnostic"
	"github.com/yaklabco/diagview/pkg/problems"
)

// ErrNoInput is returned when no input files are given and stdin is a terminal.
var ErrNoInput = errors.New("no input: pass diagnostic files or pipe them on stdin")

// inputFlags are shared by the commands that read diagnostics.
type inputFlags struct {
	format           string
	workspace        string
	ignore           []string
	respectGitignore bool
	icons            string
}

func addInputFlags(cmd *cobra.Command, flags *inputFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "", "input format: auto, lsp, sarif, gomdlint")
	cmd.Flags().StringVarP(&flags.workspace, "workspace", "w", "", "workspace root for folder labels and ignore patterns (default: current directory)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns for files to hide")
	cmd.Flags().BoolVar(&flags.respectGitignore, "respect-gitignore", false, "hide files ignored by <workspace>/.gitignore")
	cmd.Flags().StringVar(&flags.icons, "icons", "", "icon set: ascii, unicode, nerd")
}

// toConfig maps explicitly set flags onto a CLI config layer.
func (f *inputFlags) toConfig(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("workspace") {
		cfg.Workspace = f.workspace
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if changed("respect-gitignore") {
		respect := f.respectGitignore
		cfg.RespectGitignore = &respect
	}
	if changed("icons") {
		cfg.Theme.Icons = config.IconMode(f.icons)
	}
}

// session holds everything a command needs to load and show diagnostics.
type session struct {
	cfg    *config.Config
	logger *log.Logger
	inputs []string
	stdin  []byte
	filter *diagnostic.Filter
}

// newSession resolves configuration and inputs. cliCfg carries the flags the
// command set explicitly.
func newSession(cmd *cobra.Command, args []string, cliCfg *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = string(config.ColorAuto)
	}
	cliCfg.Color = config.ColorMode(colorMode)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}
	cfg := loadResult.Config

	logger := logging.Default()
	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		logging.SetLevel(cfg.LogLevel)
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	inputs, err := resolveInputs(args, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}

	sess := &session{
		cfg:    cfg,
		logger: logger,
		inputs: inputs,
	}

	if slices.Contains(inputs, diagnostic.StdinPath) {
		sess.stdin, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	}

	gitignorePath := ""
	if cfg.GitignoreEnabled() {
		gitignorePath = filepath.Join(cfg.Workspace, ".gitignore")
	}
	sess.filter, err = diagnostic.NewFilter(cfg.Workspace, cfg.Ignore, gitignorePath)
	if err != nil {
		return nil, fmt.Errorf("build filter: %w", err)
	}

	return sess, nil
}

// resolveInputs defaults to stdin when it is not a terminal.
func resolveInputs(args []string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, ErrNoInput
	}
	return []string{diagnostic.StdinPath}, nil
}

// usesStdin reports whether one of the inputs is stdin.
func (s *session) usesStdin() bool {
	return s.stdin != nil
}

// watchable returns the inputs that are files on disk.
func (s *session) watchable() []string {
	var paths []string
	for _, input := range s.inputs {
		if input != diagnostic.StdinPath {
			paths = append(paths, input)
		}
	}
	return paths
}

// load decodes every input and applies the ignore filter. Stdin is replayed
// from the bytes read at startup.
func (s *session) load(ctx context.Context) (diagnostic.Collection, error) {
	format, err := diagnostic.ParseFormat(s.cfg.Format)
	if err != nil {
		return nil, err
	}

	ctx = logging.WithLogger(ctx, s.logger)
	coll, err := diagnostic.LoadFiles(ctx, s.inputs, diagnostic.LoadOptions{
		Format:  format,
		BaseDir: s.cfg.Workspace,
		Stdin:   bytes.NewReader(s.stdin),
	})
	if err != nil {
		return nil, fmt.Errorf("load diagnostics: %w", err)
	}

	filtered := s.filter.Apply(coll)
	s.logger.Debug("diagnostics loaded",
		logging.FieldFiles, len(filtered),
		"hidden", len(coll)-len(filtered),
	)
	return filtered, nil
}

func (s *session) metrics() problems.Metrics {
	return problems.Metrics{
		LineHeight: float64(s.cfg.Theme.LineHeight),
		IconSize:   float64(s.cfg.Theme.IconSize),
		FolderGap:  float64(s.cfg.Theme.FolderGap),
	}
}

func (s *session) styles(out io.Writer) *pretty.Styles {
	return pretty.NewThemeStyles(pretty.IsColorEnabled(string(s.cfg.Color), out), s.cfg.Theme.Colors)
}

func (s *session) iconSet() *icons.Set {
	return icons.NewSet(s.cfg.Theme.Icons)
}

// absPath anchors a workspace-relative path.
func (s *session) absPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.cfg.Workspace, path)
}

// relPath shortens a path under the workspace; other paths are returned as is.
func (s *session) relPath(path string) string {
	rel, err := filepath.Rel(s.cfg.Workspace, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/diagview/internal/cli"
	"github.com/yaklabco/diagview/internal/configloader"
	"github.com/yaklabco/diagview/pkg/diagnostic"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}
}

// writeReport writes an LSP publishDiagnostics stream for files under
// dir/src and returns its path.
func writeReport(t *testing.T, dir string) string {
	t.Helper()

	uri := func(name string) string {
		return "file://" + filepath.ToSlash(filepath.Join(dir, "src", name))
	}

	lines := []string{
		fmt.Sprintf(`{"jsonrpc":"2.0","method":"textDocument/publishDiagnostics","params":{"uri":%q,"diagnostics":[`+
			`{"range":{"start":{"line":3,"character":5},"end":{"line":3,"character":9}},"severity":1,"message":"boom",`+
			`"relatedInformation":[{"location":{"uri":%q,"range":{"start":{"line":1,"character":2},"end":{"line":1,"character":3}}},"message":"here"}]},`+
			`{"range":{"start":{"line":0,"character":0},"end":{"line":0,"character":1}},"severity":2,"message":"careful"}]}}`,
			uri("a.rs"), uri("b.rs")),
	}

	path := filepath.Join(dir, "diagnostics.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	return path
}

// execute runs the root command and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// trimRows strips the padding the canvas adds to every row.
func trimRows(out string) []string {
	var rows []string
	for _, row := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		rows = append(rows, strings.TrimRight(row, " "))
	}
	return rows
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "diagview", cmd.Name())
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("color"))
	assert.NotNil(t, cmd.Flags().Lookup("watch"), "root command accepts view flags")
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"view", "render", "hit", "init", "env", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if !assert.NoError(t, err, name) {
			continue
		}
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		flags   []string
	}{
		{"view", []string{"format", "workspace", "ignore", "respect-gitignore", "icons", "severities", "editor", "log-file", "watch"}},
		{"render", []string{"format", "workspace", "severity", "collapse", "from", "rows", "hover-line", "width", "summary"}},
		{"hit", []string{"severity", "collapse", "line"}},
		{"init", []string{"force", "full", "format", "output"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()

			cmd, _, err := cli.NewRootCommand(testInfo()).Find([]string{tt.command})
			require.NoError(t, err)
			for _, flag := range tt.flags {
				assert.NotNil(t, cmd.Flags().Lookup(flag), "--%s", flag)
			}
		})
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	report := writeReport(t, dir)

	out, _, err := execute(t, "", "render", "--icons", "ascii", "--color", "never",
		"--width", "40", "-w", dir, report)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"#a.rs src",
		" Eboom",
		"  >b.rs[1, 2]:",
		"   here",
	}, trimRows(out))
}

func TestRenderWarningTabAndCollapse(t *testing.T) {
	dir := t.TempDir()
	report := writeReport(t, dir)

	out, _, err := execute(t, "", "render", "-s", "warning", "--icons", "ascii", "--color", "never",
		"--width", "40", "-w", dir, report)
	require.NoError(t, err)
	assert.Equal(t, []string{"#a.rs src", " Wcareful"}, trimRows(out))

	out, _, err = execute(t, "", "render", "--collapse", "src/a.rs", "--icons", "ascii", "--color", "never",
		"--width", "40", "-w", dir, report)
	require.NoError(t, err)
	assert.Equal(t, []string{"#a.rs src"}, trimRows(out))
}

func TestRenderWindow(t *testing.T) {
	dir := t.TempDir()
	report := writeReport(t, dir)

	out, _, err := execute(t, "", "render", "--from", "2", "--rows", "2", "--icons", "ascii",
		"--color", "never", "--width", "40", "-w", dir, report)
	require.NoError(t, err)
	assert.Equal(t, []string{"  >b.rs[1, 2]:", "   here"}, trimRows(out))
}

func TestRenderFromStdin(t *testing.T) {
	dir := t.TempDir()
	report := writeReport(t, dir)
	data, err := os.ReadFile(report)
	require.NoError(t, err)

	out, stderr, err := execute(t, string(data), "render", "--summary", "--icons", "ascii",
		"--color", "never", "--width", "40", "-w", dir)
	require.NoError(t, err)

	assert.Equal(t, "#a.rs src", trimRows(out)[0])
	assert.Contains(t, stderr, "2 problems")
	assert.Contains(t, stderr, "error: 1\n")
	assert.Contains(t, stderr, "  "+filepath.Join("src", "a.rs")+" (1)\n")
}

func TestRenderSummaryFollowsTab(t *testing.T) {
	dir := t.TempDir()
	report := writeReport(t, dir)

	_, stderr, err := execute(t, "", "render", "--summary", "-s", "hint", "--icons", "ascii",
		"--color", "never", "--width", "40", "-w", dir, report)
	require.NoError(t, err)

	assert.Contains(t, stderr, "2 problems")
	assert.NotContains(t, stderr, "hint:")
}

func TestHit(t *testing.T) {
	dir := t.TempDir()
	report := writeReport(t, dir)
	fileA := filepath.Join(dir, "src", "a.rs")
	fileB := filepath.Join(dir, "src", "b.rs")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"file header", []string{"--line", "0"}, "toggle " + fileA},
		{"diagnostic", []string{"--line", "1"}, "jump " + fileA + ":4:6"},
		{"related header", []string{"--line", "2"}, "jump " + fileB + ":2:3"},
		{"related message", []string{"--line", "3"}, "jump " + fileB + ":2:3"},
		{"past the end", []string{"--line", "9"}, "no target:"},
		{"collapsed", []string{"--line", "1", "--collapse", fileA}, "no target:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"hit", "--color", "never", "-w", dir}, tt.args...)
			args = append(args, report)

			out, _, err := execute(t, "", args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestHitRequiresLine(t *testing.T) {
	dir := t.TempDir()
	report := writeReport(t, dir)

	_, _, err := execute(t, "", "hit", report)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line")
}

func TestInvalidFormatFlag(t *testing.T) {
	dir := t.TempDir()
	report := writeReport(t, dir)

	_, _, err := execute(t, "", "render", "--format", "csv", report)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestMissingInput(t *testing.T) {
	_, _, err := execute(t, "", "render", filepath.Join(t.TempDir(), "missing.jsonl"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestUnrecognizedInput(t *testing.T) {
	_, _, err := execute(t, "not json at all", "render")
	require.Error(t, err)
	assert.Equal(t, cli.ExitDataError, cli.ExitCode(err))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, ".diagview.yml")

	_, _, err := execute(t, "", "init", "--output", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "severities")

	_, _, err = execute(t, "", "init", "--output", output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "", "init", "--force", "--format", "json", "--output", output)
	require.NoError(t, err)
}

func TestInitRejectsUnknownFormat(t *testing.T) {
	_, _, err := execute(t, "", "init", "--format", "toml", "--output", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestHelp(t *testing.T) {
	out, _, err := execute(t, "", "render", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "--hover-line")
	assert.Contains(t, out, "Global Flags:")
	assert.Contains(t, out, "--color")

	out, _, err = execute(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "render")
}

func TestEnv(t *testing.T) {
	out, _, err := execute(t, "", "env")
	require.NoError(t, err)
	assert.Contains(t, out, "DIAGVIEW_EDITOR")
	assert.Contains(t, out, "DIAGVIEW_SEVERITIES")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "diagview")
	assert.Contains(t, out, "test-version")
	assert.Contains(t, out, "test-commit")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"no input", fmt.Errorf("view: %w", cli.ErrNoInput), cli.ExitInvalidUsage},
		{"validation", &configloader.ValidationError{Field: "format"}, cli.ExitConfigError},
		{"unknown format", fmt.Errorf("stdin: %w", diagnostic.ErrUnknownFormat), cli.ExitDataError},
		{"missing file", &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}, cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

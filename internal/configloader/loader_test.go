package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/diagview/pkg/config"
	"github.com/yaklabco/diagview/pkg/diagnostic"
)

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, []string{"error", "warning"}, result.Config.Severities)
	assert.Equal(t, 1, result.Config.Theme.LineHeight)
	assert.Equal(t, config.IconsUnicode, result.Config.Theme.Icons)
	assert.Empty(t, result.LoadedFrom)

	abs, err := filepath.Abs(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, abs, result.Config.Workspace, "workspace defaults to the working directory")
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".diagview.yml"), `
severities: [warning, hint]
workspace: src
theme:
  icons: ascii
  colors:
    error: "#ff5555"
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, []string{"warning", "hint"}, cfg.Severities)
	assert.Equal(t, config.IconsASCII, cfg.Theme.Icons)
	assert.Equal(t, "#ff5555", cfg.Theme.Colors.Error)
	assert.Equal(t, "8", cfg.Theme.Colors.Dim, "unset colors keep their defaults")
	assert.Equal(t, 1, cfg.Theme.LineHeight)
	assert.True(t, filepath.IsAbs(cfg.Workspace))
	assert.Equal(t, "src", filepath.Base(cfg.Workspace))
	assert.Len(t, result.LoadedFrom, 1)
}

func TestLoad_ProjectConfigFoundFromSubdirectory(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	writeFile(t, filepath.Join(tmpDir, ".diagview.yml"), "log_level: debug\n")
	nested := filepath.Join(tmpDir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolatedOptions(nested))
	require.NoError(t, err)
	assert.Equal(t, "debug", result.Config.LogLevel)
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".diagview.yml"), "log_level: debug\n")
	repo := filepath.Join(tmpDir, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoad_JSONProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	writeFile(t, filepath.Join(tmpDir, ".diagview.json"), `{"severities": ["warning"], "theme": {"icons": "ascii"}}`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.NoError(t, err)
	assert.Equal(t, []string{"warning"}, result.Config.Severities)
	assert.Equal(t, config.IconsASCII, result.Config.Theme.Icons)
}

func TestFindProjectConfig_PrefersYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".diagview.json"), "{}")
	writeFile(t, filepath.Join(tmpDir, ".diagview.yml"), "log_level: debug\n")
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), tmpDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, ".diagview.yml"), path)
}

func TestFindProjectConfig_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindProjectConfig(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".diagview.yml"), "log_level: debug\nformat: sarif\n")
	custom := filepath.Join(tmpDir, "custom.yml")
	writeFile(t, custom, "log_level: error\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = custom

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "error", result.Config.LogLevel)
	assert.Equal(t, "sarif", result.Config.Format)
	assert.Equal(t, []string{filepath.Join(tmpDir, ".diagview.yml"), custom}, result.LoadedFrom)
}

func TestLoad_CLIOverridesEverything(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".diagview.yml"), "severities: [hint]\n")

	opts := isolatedOptions(tmpDir)
	opts.CLIConfig = &config.Config{Severities: []string{"error"}, Watch: true}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"error"}, result.Config.Severities)
	assert.True(t, result.Config.Watch)
}

func TestLoad_Env(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("DIAGVIEW_SEVERITIES", "info, hint")
	t.Setenv("DIAGVIEW_RESPECT_GITIGNORE", "true")
	t.Setenv("DIAGVIEW_LINE_HEIGHT", "2")
	t.Setenv("DIAGVIEW_EDITOR", "vim +{line} {path}")

	opts := isolatedOptions(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"info", "hint"}, result.Config.Severities)
	assert.True(t, result.Config.GitignoreEnabled())
	assert.Equal(t, 2, result.Config.Theme.LineHeight)
	assert.Equal(t, "vim +{line} {path}", result.Config.Editor.Command)
}

func TestLoad_EnvInvalid(t *testing.T) {
	t.Setenv("DIAGVIEW_LINE_HEIGHT", "tall")

	opts := isolatedOptions(t.TempDir())
	opts.IgnoreEnv = false

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DIAGVIEW_LINE_HEIGHT")
}

func TestLoad_InvalidFileReportsPath(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".diagview.yml")
	writeFile(t, path, "theme:\n  icons: emoji\n")

	_, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "theme.icons", verr.Field)
	assert.Equal(t, path, verr.FilePath)
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".diagview.yml"), "severities: [error\n")

	_, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project config")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(cfg *config.Config)
		wantField string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"unknown severity", func(cfg *config.Config) { cfg.Severities = []string{"fatal"} }, "severities[0]"},
		{"empty severities", func(cfg *config.Config) { cfg.Severities = []string{} }, "severities"},
		{"bad format", func(cfg *config.Config) { cfg.Format = "xml" }, "format"},
		{"negative line height", func(cfg *config.Config) { cfg.Theme.LineHeight = -1 }, "theme.line_height"},
		{"zero line height means default", func(cfg *config.Config) { cfg.Theme.LineHeight = 0 }, ""},
		{"bad log level", func(cfg *config.Config) { cfg.LogLevel = "trace" }, "log_level"},
		{"bad color", func(cfg *config.Config) { cfg.Color = "sometimes" }, "color"},
		{"bad glob", func(cfg *config.Config) { cfg.Ignore = []string{"[abc"} }, "ignore[0]"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			testCase.mutate(cfg)

			result := Validate(cfg)
			if testCase.wantField == "" {
				assert.True(t, result.Valid(), result.Errors)
				return
			}
			require.False(t, result.Valid())
			assert.Equal(t, testCase.wantField, result.Errors[0].Field)
		})
	}
}

func TestValidate_LineHeightMessage(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Theme.LineHeight = -2

	result := Validate(cfg)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "theme.line_height: line_height must be >= 0 (0 means default)", result.Errors[0].Error())
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Severities = []string{"error", "errors"}
	cfg.Editor.Command = "code"

	result := Validate(cfg)
	assert.True(t, result.Valid())
	assert.Len(t, result.Warnings, 2)
}

func TestValidationErrorFormat(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Field: "theme.icons", Message: "bad", FilePath: "x.yml", Line: 3}
	assert.Equal(t, "x.yml:3: theme.icons: bad", err.Error())
}

func TestSeverities(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Severities: []string{"warning", "error", "warn"}}
	assert.Equal(t, []diagnostic.Severity{diagnostic.SeverityWarning, diagnostic.SeverityError}, Severities(cfg))
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	require.NotEmpty(t, vars)
	for i := 1; i < len(vars); i++ {
		assert.Less(t, vars[i-1].Name, vars[i].Name)
	}
	names := make([]string, 0, len(vars))
	for _, v := range vars {
		names = append(names, v.Name)
	}
	assert.Contains(t, names, "DIAGVIEW_ICONS")
}

func TestWriteTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ProjectConfigName)
	require.NoError(t, WriteTemplate(context.Background(), path, config.TemplateOptions{}, false))
	require.Error(t, WriteTemplate(context.Background(), path, config.TemplateOptions{}, false))
	require.NoError(t, WriteTemplate(context.Background(), path, config.TemplateOptions{Full: true}, true))

	cfg, err := loadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.IconsUnicode, cfg.Theme.Icons)
}

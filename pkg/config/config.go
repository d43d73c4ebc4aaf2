// Package config defines the configuration types for diagview.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import "slices"

// IconMode selects the glyph set used by the terminal surface.
type IconMode string

const (
	IconsASCII   IconMode = "ascii"
	IconsUnicode IconMode = "unicode"
	IconsNerd    IconMode = "nerd"
)

// IsValid returns true if the icon mode is known.
func (m IconMode) IsValid() bool {
	switch m {
	case IconsASCII, IconsUnicode, IconsNerd:
		return true
	default:
		return false
	}
}

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is known.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// ColorsConfig maps theme roles to lipgloss colors (ANSI numbers or hex).
type ColorsConfig struct {
	Foreground  string `yaml:"foreground,omitempty"`
	Dim         string `yaml:"dim,omitempty"`
	CurrentLine string `yaml:"current_line,omitempty"`
	Error       string `yaml:"error,omitempty"`
	Warning     string `yaml:"warning,omitempty"`
	Info        string `yaml:"info,omitempty"`
	Hint        string `yaml:"hint,omitempty"`
}

// ThemeConfig holds the metrics and colors the panel consumes.
type ThemeConfig struct {
	// LineHeight is the number of terminal rows per flattened line.
	LineHeight int `yaml:"line_height,omitempty"`
	// IconSize is the icon width in cells.
	IconSize int `yaml:"icon_size,omitempty"`
	// FolderGap separates a file name from its folder label.
	FolderGap int `yaml:"folder_gap,omitempty"`

	Icons  IconMode     `yaml:"icons,omitempty"`
	Colors ColorsConfig `yaml:"colors,omitempty"`
}

// EditorConfig controls what happens when a location is activated.
type EditorConfig struct {
	// Command is run through the shell after substituting {path}, {line}
	// and {column} (1-based). Empty prints the location and exits.
	Command string `yaml:"command,omitempty"`
}

// Config is the root configuration structure for diagview.
type Config struct {
	// Severities lists the panel tabs in order.
	Severities []string `yaml:"severities,omitempty"`

	// Format forces an input decoder: auto, lsp, sarif or gomdlint.
	Format string `yaml:"format,omitempty"`

	// Workspace is the root used for folder labels and ignore patterns.
	Workspace string `yaml:"workspace,omitempty"`

	// Ignore contains doublestar globs for files whose diagnostics are hidden.
	Ignore []string `yaml:"ignore,omitempty"`

	// RespectGitignore hides diagnostics for files matched by <workspace>/.gitignore.
	RespectGitignore *bool `yaml:"respect_gitignore,omitempty"`

	Theme  ThemeConfig  `yaml:"theme,omitempty"`
	Editor EditorConfig `yaml:"editor,omitempty"`

	// LogFile receives logs while the interactive panel owns the terminal.
	LogFile string `yaml:"log_file,omitempty"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level,omitempty"`

	// CLI-level options (not persisted to config files).

	// Watch reloads inputs when they change.
	Watch bool `yaml:"-"`

	// Color controls styled output.
	Color ColorMode `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	respect := false
	return &Config{
		Severities:       []string{"error", "warning"},
		Format:           "auto",
		RespectGitignore: &respect,
		Theme: ThemeConfig{
			LineHeight: 1,
			IconSize:   1,
			FolderGap:  1,
			Icons:      IconsUnicode,
			Colors: ColorsConfig{
				Foreground:  "7",
				Dim:         "8",
				CurrentLine: "236",
				Error:       "9",
				Warning:     "11",
				Info:        "12",
				Hint:        "14",
			},
		},
		LogLevel: "info",
		Color:    ColorAuto,
	}
}

// GitignoreEnabled reports whether .gitignore filtering is on.
func (c *Config) GitignoreEnabled() bool {
	return c.RespectGitignore != nil && *c.RespectGitignore
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Severities = slices.Clone(c.Severities)
	clone.Ignore = slices.Clone(c.Ignore)
	if c.RespectGitignore != nil {
		respect := *c.RespectGitignore
		clone.RespectGitignore = &respect
	}

	return &clone
}

package configloader

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/diagview/internal/logging"
	"github.com/yaklabco/diagview/pkg/config"
	"github.com/yaklabco/diagview/pkg/diagnostic"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "theme.line_height").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings. Zero values mean
// "unset" and are accepted so that partial config files validate.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	validateSeverities(cfg, result)

	if _, err := diagnostic.ParseFormat(cfg.Format); err != nil {
		result.addError("format", cfg.Format, "invalid format %q; must be one of: auto, lsp, sarif, gomdlint", cfg.Format)
	}

	if cfg.Theme.LineHeight < 0 {
		result.addError("theme.line_height", cfg.Theme.LineHeight, "line_height must be >= 0 (0 means default)")
	}
	if cfg.Theme.IconSize < 0 {
		result.addError("theme.icon_size", cfg.Theme.IconSize, "icon_size must be >= 0")
	}
	if cfg.Theme.FolderGap < 0 {
		result.addError("theme.folder_gap", cfg.Theme.FolderGap, "folder_gap must be >= 0")
	}
	if cfg.Theme.Icons != "" && !cfg.Theme.Icons.IsValid() {
		result.addError("theme.icons", cfg.Theme.Icons, "invalid icon mode %q; must be one of: ascii, unicode, nerd", cfg.Theme.Icons)
	}

	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.addError("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}

	if cfg.LogLevel != "" && !logging.ValidLevel(cfg.LogLevel) {
		result.addError("log_level", cfg.LogLevel, "invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel)
	}

	if cfg.Editor.Command != "" && !strings.Contains(cfg.Editor.Command, "{path}") {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "editor.command",
			Value:   cfg.Editor.Command,
			Message: "editor command has no {path} placeholder; the location will not be passed",
		})
	}

	validateIgnorePatterns(cfg, result)

	return result
}

func validateSeverities(cfg *config.Config, result *ValidationResult) {
	if cfg.Severities != nil && len(cfg.Severities) == 0 {
		result.addError("severities", cfg.Severities, "at least one severity is required")
	}

	seen := make(map[diagnostic.Severity]bool)
	for i, name := range cfg.Severities {
		sev, err := diagnostic.ParseSeverity(name)
		if err != nil {
			result.addError(fmt.Sprintf("severities[%d]", i), name,
				"invalid severity %q; must be one of: error, warning, info, hint", name)
			continue
		}
		if seen[sev] {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("severities[%d]", i),
				Value:   name,
				Message: fmt.Sprintf("duplicate severity %q; the tab is shown once", name),
			})
		}
		seen[sev] = true
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// Severities converts the configured tab names into severities, dropping
// duplicates. The config must already be valid.
func Severities(cfg *config.Config) []diagnostic.Severity {
	var out []diagnostic.Severity
	seen := make(map[diagnostic.Severity]bool)
	for _, name := range cfg.Severities {
		sev, err := diagnostic.ParseSeverity(name)
		if err != nil || seen[sev] {
			continue
		}
		seen[sev] = true
		out = append(out, sev)
	}
	return out
}

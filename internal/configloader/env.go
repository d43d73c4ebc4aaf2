package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/diagview/pkg/config"
)

// envVarPrefix is the prefix for all diagview environment variables.
const envVarPrefix = "DIAGVIEW_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"SEVERITIES":        {"severities", envTypeSlice, "Comma-separated panel tabs: error, warning, info, hint"},
	"FORMAT":            {"format", envTypeString, "Input format: auto, lsp, sarif or gomdlint"},
	"WORKSPACE":         {"workspace", envTypeString, "Workspace root for folder labels"},
	"IGNORE":            {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"RESPECT_GITIGNORE": {"respect_gitignore", envTypeBool, "Hide files matched by .gitignore: true or false"},
	"LINE_HEIGHT":       {"theme.line_height", envTypeInt, "Terminal rows per panel line"},
	"ICONS":             {"theme.icons", envTypeString, "Icon set: ascii, unicode or nerd"},
	"EDITOR":            {"editor.command", envTypeString, "Command template for jumping to a location"},
	"LOG_FILE":          {"log_file", envTypeString, "Log file used while the panel is open"},
	"LOG_LEVEL":         {"log_level", envTypeString, "Log level: debug, info, warn or error"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with DIAGVIEW_ (e.g., DIAGVIEW_ICONS).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = value
	case "workspace":
		cfg.Workspace = value
	case "theme.icons":
		cfg.Theme.Icons = config.IconMode(value)
	case "editor.command":
		cfg.Editor.Command = value
	case "log_file":
		cfg.LogFile = value
	case "log_level":
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "respect_gitignore":
		cfg.RespectGitignore = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "theme.line_height":
		cfg.Theme.LineHeight = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "severities":
		cfg.Severities = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns every supported environment variable, sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}

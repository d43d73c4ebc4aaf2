package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every key with its default value.
	// If false, generates a minimal commented template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(NewConfig())
	}
	if opts.Full {
		return NewConfig().ToYAMLWithHeader(DefaultTemplateHeader())
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Panel tabs, in order: error, warning, info, hint
severities: [error, warning]

# Input format: auto, lsp, sarif or gomdlint
# format: auto

# Root for folder labels and ignore patterns (default: working directory)
# workspace: .

# Hide diagnostics for these files (doublestar globs, workspace-relative)
# ignore:
#   - "vendor/**"
#   - "**/*.pb.go"

# Hide diagnostics for files matched by <workspace>/.gitignore
# respect_gitignore: false

# theme:
#   line_height: 1
#   icons: unicode   # ascii, unicode or nerd
#   colors:
#     foreground: "7"
#     dim: "8"
#     current_line: "236"

# Command run when a location is activated; {path}, {line} and {column}
# are substituted (1-based). Empty prints the location and exits.
# editor:
#   command: "code -g {path}:{line}:{column}"

# Logs are written here while the panel is open
# log_file: /tmp/diagview.log
# log_level: info
`)

	return buf.Bytes()
}

// templateToJSON renders the defaults as JSON. The YAML tags are reused by
// round-tripping through a generic map.
func templateToJSON(cfg *Config) ([]byte, error) {
	yamlBytes, err := cfg.ToYAML()
	if err != nil {
		return nil, err
	}

	var generic map[string]any
	if err := yaml.Unmarshal(yamlBytes, &generic); err != nil {
		return nil, fmt.Errorf("decode defaults: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(generic, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# diagview configuration
# See: https://github.com/yaklabco/diagview`
}

package diagnostic

import (
	"fmt"
	"strings"
)

// Severity uses the LSP DiagnosticSeverity numbering.
type Severity int

const (
	SeverityError       Severity = 1
	SeverityWarning     Severity = 2
	SeverityInformation Severity = 3
	SeverityHint        Severity = 4
)

// String returns the lower-case name used in configuration and flags.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Title returns the plural heading used for a panel tab ("Errors").
func (s Severity) Title() string {
	switch s {
	case SeverityError:
		return "Errors"
	case SeverityWarning:
		return "Warnings"
	case SeverityInformation:
		return "Info"
	case SeverityHint:
		return "Hints"
	default:
		return s.String()
	}
}

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	return s >= SeverityError && s <= SeverityHint
}

// ParseSeverity accepts the names produced by String plus common aliases.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error", "errors", "1":
		return SeverityError, nil
	case "warning", "warnings", "warn", "2":
		return SeverityWarning, nil
	case "info", "information", "note", "3":
		return SeverityInformation, nil
	case "hint", "hints", "4":
		return SeverityHint, nil
	default:
		return 0, fmt.Errorf("unknown severity %q (expected error, warning, info or hint)", name)
	}
}

// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/diagview/pkg/config"
	"github.com/yaklabco/diagview/pkg/diagnostic"
)

// Styles contains all styled renderers for CLI and panel output.
type Styles struct {
	// Severity styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Hint    lipgloss.Style

	// Panel roles
	Foreground  lipgloss.Style
	Dim         lipgloss.Style
	CurrentLine lipgloss.Style

	// Chrome
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	StatusBar   lipgloss.Style
	FilePath    lipgloss.Style
	Location    lipgloss.Style

	// Summary styles
	Success lipgloss.Style
	Failure lipgloss.Style

	// Misc
	Bold lipgloss.Style
}

// NewStyles creates Styles with the default theme colors.
func NewStyles(colorEnabled bool) *Styles {
	return NewThemeStyles(colorEnabled, config.NewConfig().Theme.Colors)
}

// NewThemeStyles creates Styles from configured colors. Colors left empty
// fall back to the terminal default.
func NewThemeStyles(colorEnabled bool, colors config.ColorsConfig) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles(colors)
}

func fg(color string) lipgloss.Style {
	style := lipgloss.NewStyle()
	if color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	return style
}

func newColorStyles(colors config.ColorsConfig) *Styles {
	currentLine := lipgloss.NewStyle()
	if colors.CurrentLine != "" {
		currentLine = currentLine.Background(lipgloss.Color(colors.CurrentLine))
	}

	return &Styles{
		Error:   fg(colors.Error).Bold(true),
		Warning: fg(colors.Warning).Bold(true),
		Info:    fg(colors.Info).Bold(true),
		Hint:    fg(colors.Hint),

		Foreground:  fg(colors.Foreground),
		Dim:         fg(colors.Dim),
		CurrentLine: currentLine,

		TabActive:   fg(colors.Foreground).Bold(true).Underline(true).Padding(0, 1),
		TabInactive: fg(colors.Dim).Padding(0, 1),
		StatusBar:   fg(colors.Dim),
		FilePath:    lipgloss.NewStyle().Bold(true),
		Location:    fg(colors.Dim),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting. Tabs keep their
// padding so the layout does not shift.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:       plain,
		Warning:     plain,
		Info:        plain,
		Hint:        plain,
		Foreground:  plain,
		Dim:         plain,
		CurrentLine: plain,
		TabActive:   plain.Padding(0, 1),
		TabInactive: plain.Padding(0, 1),
		StatusBar:   plain,
		FilePath:    plain,
		Location:    plain,
		Success:     plain,
		Failure:     plain,
		Bold:        plain,
	}
}

// Severity returns the style for a severity.
func (s *Styles) Severity(sev diagnostic.Severity) lipgloss.Style {
	switch sev {
	case diagnostic.SeverityError:
		return s.Error
	case diagnostic.SeverityWarning:
		return s.Warning
	case diagnostic.SeverityInformation:
		return s.Info
	default:
		return s.Hint
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

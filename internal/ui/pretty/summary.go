package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/diagview/pkg/diagnostic"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

// Counts tallies diagnostics by severity.
type Counts struct {
	BySeverity map[diagnostic.Severity]int
	Files      int
	Total      int
}

// CountCollection tallies a collection. Files counts files with at least one
// diagnostic.
func CountCollection(coll diagnostic.Collection) Counts {
	counts := Counts{BySeverity: make(map[diagnostic.Severity]int)}
	for _, diags := range coll {
		if len(diags) == 0 {
			continue
		}
		counts.Files++
		for _, d := range diags {
			counts.BySeverity[d.Severity]++
			counts.Total++
		}
	}
	return counts
}

// FormatSummaryOneLine formats counts as a single line.
// Example: "12 problems (8 errors, 4 warnings) in 3 files".
func (s *Styles) FormatSummaryOneLine(counts Counts) string {
	if counts.Total == 0 {
		return s.Success.Render("No problems") + "\n"
	}

	problemWord := "problems"
	if counts.Total == 1 {
		problemWord = "problem"
	}

	var severityParts []string
	for _, sev := range []diagnostic.Severity{
		diagnostic.SeverityError, diagnostic.SeverityWarning,
		diagnostic.SeverityInformation, diagnostic.SeverityHint,
	} {
		n := counts.BySeverity[sev]
		if n == 0 {
			continue
		}
		severityParts = append(severityParts, s.Severity(sev).Render(fmt.Sprintf("%d %s", n, countNoun(sev, n))))
	}

	fileWord := wordFiles
	if counts.Files == 1 {
		fileWord = wordFile
	}

	line := fmt.Sprintf("%d %s", counts.Total, problemWord)
	if len(severityParts) > 0 {
		line += " (" + strings.Join(severityParts, ", ") + ")"
	}
	return line + fmt.Sprintf(" in %d %s", counts.Files, fileWord) + "\n"
}

// FormatTab renders a tab label such as "Errors 3".
func (s *Styles) FormatTab(sev diagnostic.Severity, count int, active bool) string {
	label := fmt.Sprintf("%s %d", sev.Title(), count)
	if active {
		return s.TabActive.Render(label)
	}
	return s.TabInactive.Render(label)
}

func countNoun(sev diagnostic.Severity, n int) string {
	name := sev.String()
	if n == 1 || sev == diagnostic.SeverityInformation {
		return name
	}
	return name + "s"
}

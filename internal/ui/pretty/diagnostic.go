package pretty

import (
	"fmt"

	"github.com/yaklabco/diagview/pkg/diagnostic"
	"github.com/yaklabco/diagview/pkg/problems"
)

// FormatLocation renders path:line:column with 1-based coordinates, the
// form editors and terminals recognise.
func (s *Styles) FormatLocation(path string, pos diagnostic.Position) string {
	return s.FilePath.Render(path) + s.Location.Render(fmt.Sprintf(":%d:%d", pos.Line+1, pos.Character+1))
}

// FormatSeverity returns a styled severity name.
func (s *Styles) FormatSeverity(sev diagnostic.Severity) string {
	return s.Severity(sev).Render(sev.String())
}

// FormatAction describes the result of a click.
func (s *Styles) FormatAction(action problems.Action) string {
	switch a := action.(type) {
	case problems.ToggleCollapse:
		return s.Bold.Render("toggle") + " " + s.FilePath.Render(a.Path)
	case problems.JumpToLocation:
		return s.Bold.Render("jump") + " " + s.FormatLocation(a.Path, a.Position)
	case problems.NoTarget:
		return s.Dim.Render(a.String())
	default:
		return s.Dim.Render(fmt.Sprintf("%v", action))
	}
}

// FormatFileHeader formats a file header with its diagnostic count.
func (s *Styles) FormatFileHeader(path string, count int) string {
	header := s.FilePath.Render(path)
	if count > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d)", count))
	}
	return header
}

// Package diagnostic defines the diagnostic data model shown by diagview and
// the loaders that decode it from LSP, SARIF and gomdlint payloads.
package diagnostic

import (
	"fmt"
	"strings"
)

// Position is a zero-based line/character offset, as in the LSP wire format.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// String returns the position in "line:character" form (zero-based).
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location points into another document.
type Location struct {
	// URI identifies the target document. It is kept verbatim so that a
	// malformed URI can still be displayed; use Path to resolve it.
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// Path converts the location's URI into a filesystem path.
func (l Location) Path() (string, error) {
	return PathFromURI(l.URI)
}

// RelatedInfo is a secondary location/message attached to a diagnostic.
type RelatedInfo struct {
	Location Location `json:"location"`
	Message  string   `json:"message"`
}

// MessageLines returns the message split into display lines.
func (r RelatedInfo) MessageLines() []string {
	return SplitLines(r.Message)
}

// Diagnostic is a single error, warning, information or hint.
type Diagnostic struct {
	Severity Severity      `json:"severity"`
	Message  string        `json:"message"`
	Range    Range         `json:"range"`
	Source   string        `json:"source,omitempty"`
	Code     string        `json:"code,omitempty"`
	Related  []RelatedInfo `json:"relatedInformation,omitempty"`
}

// MessageLines returns the message split into display lines.
func (d Diagnostic) MessageLines() []string {
	return SplitLines(d.Message)
}

// Collection maps a file path to its diagnostics in source order.
type Collection map[string][]Diagnostic

// Count returns the number of diagnostics of the given severity.
func (c Collection) Count(sev Severity) int {
	n := 0
	for _, diags := range c {
		for _, d := range diags {
			if d.Severity == sev {
				n++
			}
		}
	}
	return n
}

// Merge copies every file from other into c. Files present in both are
// replaced by other's list, matching the publish semantics of a language server.
func (c Collection) Merge(other Collection) {
	for path, diags := range other {
		if len(diags) == 0 {
			delete(c, path)
			continue
		}
		c[path] = diags
	}
}

// SplitLines splits text into lines. A trailing newline does not produce an
// extra empty line, a trailing carriage return is dropped from each line, and
// the empty string has no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

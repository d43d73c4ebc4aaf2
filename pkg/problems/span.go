package problems

import "github.com/yaklabco/diagview/pkg/diagnostic"

// Spans computes how many flattened lines an entry occupies. It is the only
// place line counts are derived; Measure, Paint and HitTest all go through it.
//
//	span(file)       = 1                         if collapsed
//	                 = 1 + sum(span(diagnostic)) otherwise
//	span(diagnostic) = message lines + sum(span(related))
//	span(related)    = message lines + 1         (location header)
type Spans struct {
	State CollapseState
}

// File returns the span of a file section, header included.
func (s Spans) File(g FileGroup) int {
	if isCollapsed(s.State, g.Path) {
		return 1
	}
	n := 1
	for _, d := range g.Diagnostics {
		n += s.Diagnostic(d)
	}
	return n
}

// Diagnostic returns the span of a diagnostic and its related information.
func (s Spans) Diagnostic(d diagnostic.Diagnostic) int {
	n := len(d.MessageLines())
	for _, r := range d.Related {
		n += s.Related(r)
	}
	return n
}

// Related returns the span of one related-information entry.
func (Spans) Related(r diagnostic.RelatedInfo) int {
	return len(r.MessageLines()) + 1
}

// Total returns the flattened line count of the whole index.
func (s Spans) Total(idx Index) int {
	n := 0
	for _, g := range idx {
		n += s.File(g)
	}
	return n
}

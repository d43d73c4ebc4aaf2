package problems

import (
	"slices"
	"strings"

	"github.com/yaklabco/diagview/pkg/diagnostic"
)

// FileGroup is one file's diagnostics after severity filtering.
type FileGroup struct {
	Path        string
	Diagnostics []diagnostic.Diagnostic
}

// Index is the ordered list of file groups for one severity.
type Index []FileGroup

// BuildIndex keeps only diagnostics of the given severity, drops files left
// without any, and sorts the remaining files by path. Diagnostic order
// within a file is preserved.
func BuildIndex(coll diagnostic.Collection, sev diagnostic.Severity) Index {
	idx := make(Index, 0, len(coll))

	for path, diags := range coll {
		var matched []diagnostic.Diagnostic
		for _, d := range diags {
			if d.Severity == sev {
				matched = append(matched, d)
			}
		}
		if len(matched) > 0 {
			idx = append(idx, FileGroup{Path: path, Diagnostics: matched})
		}
	}

	slices.SortFunc(idx, func(a, b FileGroup) int {
		return strings.Compare(a.Path, b.Path)
	})

	return idx
}

// Len returns the number of diagnostics across all files.
func (idx Index) Len() int {
	n := 0
	for _, g := range idx {
		n += len(g.Diagnostics)
	}
	return n
}

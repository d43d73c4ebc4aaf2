package diagnostic

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// Filter drops files from a collection before it is indexed.
type Filter struct {
	// Root is the directory that ignore patterns are relative to.
	Root string

	patterns  []string
	gitignore *ignore.GitIgnore
}

// NewFilter validates the glob patterns. When gitignorePath is non-empty the
// file is compiled as well; a missing file is not an error.
func NewFilter(root string, patterns []string, gitignorePath string) (*Filter, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid ignore pattern %q", p)
		}
	}

	f := &Filter{Root: root, patterns: patterns}

	if gitignorePath != "" {
		gi, err := ignore.CompileIgnoreFile(gitignorePath)
		if err == nil {
			f.gitignore = gi
		}
	}

	return f, nil
}

// Excluded reports whether diagnostics for path should be hidden.
func (f *Filter) Excluded(path string) bool {
	if f == nil {
		return false
	}

	rel := path
	if f.Root != "" {
		if r, err := filepath.Rel(f.Root, path); err == nil {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)

	for _, p := range f.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}

	if f.gitignore != nil && !isOutside(rel) && f.gitignore.MatchesPath(rel) {
		return true
	}

	return false
}

// Apply returns a new collection without the excluded files.
func (f *Filter) Apply(coll Collection) Collection {
	if f == nil || (len(f.patterns) == 0 && f.gitignore == nil) {
		return coll
	}
	out := make(Collection, len(coll))
	for path, diags := range coll {
		if !f.Excluded(path) {
			out[path] = diags
		}
	}
	return out
}

func isOutside(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, "../")
}

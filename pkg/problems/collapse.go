package problems

import "maps"

// CollapseState reports whether a file section shows only its header.
// Paths that were never toggled are expanded.
type CollapseState interface {
	IsCollapsed(path string) bool
}

// CollapseMap is a plain CollapseState. The zero value (nil) expands everything.
type CollapseMap map[string]bool

// IsCollapsed implements CollapseState.
func (m CollapseMap) IsCollapsed(path string) bool {
	return m[path]
}

func isCollapsed(state CollapseState, path string) bool {
	return state != nil && state.IsCollapsed(path)
}

// CollapseStore owns the collapse flags. It has exactly one writer, the
// event loop that applies actions produced by HitTest; it is not safe for
// concurrent use.
type CollapseStore struct {
	collapsed CollapseMap
}

// NewCollapseStore returns a store with every file expanded.
func NewCollapseStore() *CollapseStore {
	return &CollapseStore{collapsed: make(CollapseMap)}
}

// IsCollapsed implements CollapseState.
func (s *CollapseStore) IsCollapsed(path string) bool {
	return s.collapsed[path]
}

// Apply performs a ToggleCollapse action and reports whether the state
// changed. Every other action is ignored.
func (s *CollapseStore) Apply(action Action) bool {
	toggle, ok := action.(ToggleCollapse)
	if !ok {
		return false
	}
	if s.collapsed[toggle.Path] {
		delete(s.collapsed, toggle.Path)
	} else {
		s.collapsed[toggle.Path] = true
	}
	return true
}

// Snapshot returns a copy of the current flags.
func (s *CollapseStore) Snapshot() CollapseMap {
	return maps.Clone(s.collapsed)
}

// Package problems implements the line-addressing core of the diagnostics panel.
//
// The panel shows one severity class at a time: a header row per file,
// followed (unless the file is collapsed) by each diagnostic's message rows
// and, under every diagnostic, a header row plus message rows for each piece
// of related information. Rows are addressed by a single flattened line
// index rather than by widgets.
//
// Three operations walk that structure independently:
//
//   - Measure reports the scrollable extent.
//   - Paint emits draw calls for the rows inside a visible range.
//   - HitTest maps a clicked line back to an Action.
//
// All three derive line counts from Spans, so what is measured, what is
// drawn and what is clicked cannot disagree. Nothing is cached between
// calls; callers rebuild the Index from the current collection every time.
// Collapse flags are read through CollapseState and only ever changed by
// applying a ToggleCollapse action to a CollapseStore.
package problems

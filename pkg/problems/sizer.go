package problems

// Extent is the scrollable size of an index.
type Extent struct {
	Lines  int
	Height float64
}

// Measure returns the total flattened line count and its height.
func Measure(idx Index, state CollapseState, lineHeight float64) Extent {
	lines := Spans{State: state}.Total(idx)
	return Extent{Lines: lines, Height: float64(lines) * lineHeight}
}

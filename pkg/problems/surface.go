package problems

// Surface receives the draw calls emitted by Paint. Coordinates are in the
// same units as Metrics.
type Surface interface {
	DrawIcon(icon Icon, bounds Rect, tint Color)
	DrawText(text string, origin Point, color Color)
	FillRect(bounds Rect, color Color)
	// TextSize returns the laid-out size of a single line of text.
	TextSize(text string) Size
}

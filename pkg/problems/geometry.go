package problems

import (
	"math"

	"github.com/yaklabco/diagview/pkg/diagnostic"
)

// Point is a position in surface units (pixels for a GUI, cells for a terminal).
type Point struct {
	X, Y float64
}

// Size is a width/height pair in surface units.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle from (X0, Y0) to (X1, Y1).
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// RectAt returns the rectangle with the given origin and size.
func RectAt(origin Point, size Size) Rect {
	return Rect{X0: origin.X, Y0: origin.Y, X1: origin.X + size.Width, Y1: origin.Y + size.Height}
}

// Inflate grows the rectangle by d on every side; a negative d shrinks it.
func (r Rect) Inflate(d float64) Rect {
	return Rect{X0: r.X0 - d, Y0: r.Y0 - d, X1: r.X1 + d, Y1: r.Y1 + d}
}

// Width returns X1 - X0.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns Y1 - Y0.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Metrics carries the theme values the panel consumes but never computes.
type Metrics struct {
	// LineHeight is the height of one flattened line. Constant for a traversal.
	LineHeight float64
	// IconSize is the edge length of icons, centered in a LineHeight square.
	IconSize float64
	// FolderGap separates the file name from its folder label.
	FolderGap float64
}

// DefaultMetrics returns pixel metrics for a GUI surface.
func DefaultMetrics() Metrics {
	return Metrics{LineHeight: 25, IconSize: 14, FolderGap: 5}
}

// CellMetrics returns metrics for a terminal surface where a line is one row.
func CellMetrics() Metrics {
	return Metrics{LineHeight: 1, IconSize: 1, FolderGap: 1}
}

// LineAt maps a vertical coordinate to a flattened line index.
func (m Metrics) LineAt(y float64) int {
	return int(math.Floor(y / m.LineHeight))
}

// iconPadding centers an IconSize icon in a LineHeight square.
func (m Metrics) iconPadding() float64 {
	return max((m.LineHeight-m.IconSize)/2, 0)
}

// Color is a theme role; the surface maps it to a concrete color.
type Color int

const (
	// ColorNone draws an icon with its own colors.
	ColorNone Color = iota
	ColorForeground
	ColorDim
	ColorCurrentLine
)

// IconKind selects the glyph drawn by Surface.DrawIcon.
type IconKind int

const (
	IconFile IconKind = iota
	IconError
	IconWarning
	IconInfo
	IconHint
	IconLink
)

// Icon is an icon request. Path is set for IconFile so the surface can pick
// a file-type glyph.
type Icon struct {
	Kind IconKind
	Path string
}

// SeverityIcon returns the icon drawn next to a diagnostic.
func SeverityIcon(sev diagnostic.Severity) Icon {
	switch sev {
	case diagnostic.SeverityError:
		return Icon{Kind: IconError}
	case diagnostic.SeverityInformation:
		return Icon{Kind: IconInfo}
	case diagnostic.SeverityHint:
		return Icon{Kind: IconHint}
	default:
		return Icon{Kind: IconWarning}
	}
}

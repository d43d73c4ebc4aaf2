// Package canvas implements problems.Surface on a grid of terminal cells.
//
// Content coordinates are in cells: one unit is one column or one row. The
// canvas shows rows [Top, Top+Height) of the content and drops everything
// outside that window.
package canvas

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/diagview/internal/ui/icons"
	"github.com/yaklabco/diagview/internal/ui/pretty"
	"github.com/yaklabco/diagview/pkg/problems"
)

const ellipsis = "…"

type role int

const (
	roleForeground role = iota
	roleDim
	roleError
	roleWarning
	roleInfo
	roleHint
)

type cell struct {
	text      string
	role      role
	highlight bool
	// continuation marks the right half of a wide rune.
	continuation bool
}

// Canvas is a problems.Surface backed by a cell grid.
type Canvas struct {
	width  int
	height int
	top    int
	cells  []cell

	icons  *icons.Set
	styles *pretty.Styles
}

var _ problems.Surface = (*Canvas)(nil)

// New returns a blank canvas of width by height cells showing content rows
// starting at top.
func New(width, height, top int, iconSet *icons.Set, styles *pretty.Styles) *Canvas {
	width = max(width, 0)
	height = max(height, 0)
	c := &Canvas{
		width:  width,
		height: height,
		top:    top,
		cells:  make([]cell, width*height),
		icons:  iconSet,
		styles: styles,
	}
	c.clear()
	return c
}

func (c *Canvas) clear() {
	for i := range c.cells {
		c.cells[i] = cell{text: " "}
	}
}

// Visible returns the content rectangle the canvas shows.
func (c *Canvas) Visible() problems.Rect {
	return problems.Rect{
		X0: 0,
		Y0: float64(c.top),
		X1: float64(c.width),
		Y1: float64(c.top + c.height),
	}
}

// DrawIcon draws a glyph at the top-left cell of bounds. Severity icons use
// their severity color; other icons use tint.
func (c *Canvas) DrawIcon(icon problems.Icon, bounds problems.Rect, tint problems.Color) {
	r := roleFor(tint)
	switch icon.Kind {
	case problems.IconError:
		r = roleError
	case problems.IconWarning:
		r = roleWarning
	case problems.IconInfo:
		r = roleInfo
	case problems.IconHint:
		r = roleHint
	}
	c.write(c.icons.Glyph(icon), int(math.Floor(bounds.X0)), c.row(bounds.Y0), r)
}

// DrawText draws one line of text starting at origin, clipped to the
// canvas width.
func (c *Canvas) DrawText(text string, origin problems.Point, color problems.Color) {
	c.write(text, int(math.Floor(origin.X)), c.row(origin.Y), roleFor(color))
}

// FillRect marks the covered cells as highlighted. Text drawn afterwards
// keeps the highlight.
func (c *Canvas) FillRect(bounds problems.Rect, _ problems.Color) {
	y0 := int(math.Floor(bounds.Y0)) - c.top
	y1 := int(math.Ceil(bounds.Y1)) - c.top
	x0 := max(int(math.Floor(bounds.X0)), 0)
	x1 := min(int(math.Ceil(bounds.X1)), c.width)

	for y := max(y0, 0); y < min(y1, c.height); y++ {
		for x := x0; x < x1; x++ {
			c.cells[y*c.width+x].highlight = true
		}
	}
}

// TextSize returns the display width of text in cells and a height of one.
func (c *Canvas) TextSize(text string) problems.Size {
	return problems.Size{Width: float64(runewidth.StringWidth(sanitize(text))), Height: 1}
}

func (c *Canvas) row(y float64) int {
	return int(math.Floor(y)) - c.top
}

func (c *Canvas) write(text string, col, row int, r role) {
	if row < 0 || row >= c.height || col >= c.width {
		return
	}

	text = sanitize(text)
	if runewidth.StringWidth(text) > c.width-col {
		text = runewidth.Truncate(text, c.width-col, ellipsis)
	}

	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			if col > 0 && col <= c.width {
				c.at(col-1, row).text += string(ch)
			}
			continue
		}
		if col >= 0 && col+w <= c.width {
			target := c.at(col, row)
			target.text, target.role, target.continuation = string(ch), r, false
			if w == 2 {
				next := c.at(col+1, row)
				next.text, next.role, next.continuation = "", r, true
			} else if col+1 < c.width && c.at(col+1, row).continuation {
				c.at(col+1, row).text, c.at(col+1, row).continuation = " ", false
			}
		}
		col += w
	}
}

func (c *Canvas) at(col, row int) *cell {
	return &c.cells[row*c.width+col]
}

// Render returns the styled canvas, one line per row.
func (c *Canvas) Render() string {
	lines := make([]string, c.height)
	for row := range c.height {
		lines[row] = c.renderRow(row)
	}
	return strings.Join(lines, "\n")
}

func (c *Canvas) renderRow(row int) string {
	var (
		out     strings.Builder
		run     strings.Builder
		current cell
		started bool
	)

	flush := func() {
		if run.Len() == 0 {
			return
		}
		out.WriteString(c.style(current).Render(run.String()))
		run.Reset()
	}

	for col := range c.width {
		cl := *c.at(col, row)
		if cl.continuation {
			continue
		}
		if started && (cl.role != current.role || cl.highlight != current.highlight) {
			flush()
		}
		current, started = cl, true
		run.WriteString(cl.text)
	}
	flush()

	return out.String()
}

func (c *Canvas) style(cl cell) lipgloss.Style {
	var style lipgloss.Style
	switch cl.role {
	case roleDim:
		style = c.styles.Dim
	case roleError:
		style = c.styles.Error
	case roleWarning:
		style = c.styles.Warning
	case roleInfo:
		style = c.styles.Info
	case roleHint:
		style = c.styles.Hint
	default:
		style = c.styles.Foreground
	}
	if cl.highlight {
		style = style.Inherit(c.styles.CurrentLine)
	}
	return style
}

func roleFor(color problems.Color) role {
	if color == problems.ColorDim {
		return roleDim
	}
	return roleForeground
}

// sanitize replaces tabs with a space and drops other control characters.
func sanitize(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case r < ' ' || r == 0x7f:
			return -1
		default:
			return r
		}
	}, text)
}

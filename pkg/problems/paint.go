package problems

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/yaklabco/diagview/pkg/diagnostic"
)

// PaintOptions carries everything Paint reads besides the index.
type PaintOptions struct {
	State   CollapseState
	Metrics Metrics
	// Visible is the region to paint. Only its vertical extent culls rows.
	Visible Rect
	// Width is the width of hover highlights.
	Width float64
	// Hover is the last pointer position, or nil when the pointer is outside.
	Hover *Point
	// WorkspaceRoot relativizes folder labels; empty shows parent paths as is.
	WorkspaceRoot string
}

// VisibleLines converts a vertical range into the inclusive line range that
// may need drawing. Two lines of slack cover partially visible rows.
func (m Metrics) VisibleLines(y0, y1 float64) (minLine, maxLine int) {
	return m.LineAt(y0), m.LineAt(y1) + 2
}

// Paint emits draw calls for every row of idx that intersects the visible
// range. Entries above the range are counted but not drawn, and the walk
// stops at the first entry below it.
func Paint(surface Surface, idx Index, opts PaintOptions) {
	minLine, maxLine := opts.Metrics.VisibleLines(opts.Visible.Y0, opts.Visible.Y1)

	p := painter{
		surface: surface,
		opts:    opts,
		spans:   Spans{State: opts.State},
		lh:      opts.Metrics.LineHeight,
		pad:     opts.Metrics.iconPadding(),
		minLine: minLine,
		maxLine: maxLine,
		hover:   -1,
	}
	if opts.Hover != nil {
		p.hover = opts.Metrics.LineAt(opts.Hover.Y)
	}

	cursor := 0
	for _, group := range idx {
		if cursor > maxLine {
			return
		}
		span := p.spans.File(group)
		if cursor+span <= minLine {
			cursor += span
			continue
		}
		p.group(group, cursor)
		cursor += span
	}
}

type painter struct {
	surface Surface
	opts    PaintOptions
	spans   Spans
	lh      float64
	pad     float64
	minLine int
	maxLine int
	hover   int
}

func (p *painter) visible(line int) bool {
	return line >= p.minLine && line <= p.maxLine
}

func (p *painter) hovered(start, span int) bool {
	return p.hover >= start && p.hover < start+span
}

func (p *painter) iconRect(column float64, line int) Rect {
	return RectAt(Point{X: column * p.lh, Y: float64(line) * p.lh}, Size{Width: p.lh, Height: p.lh}).Inflate(-p.pad)
}

// text draws one line of text vertically centered in its row and returns
// its laid-out size.
func (p *painter) text(text string, x float64, line int, color Color) Size {
	size := p.surface.TextSize(text)
	p.surface.DrawText(text, Point{X: x, Y: float64(line)*p.lh + (p.lh-size.Height)/2}, color)
	return size
}

func (p *painter) highlight(start, span int) {
	bounds := Rect{X0: 0, Y0: float64(start) * p.lh, X1: p.opts.Width, Y1: float64(start+span) * p.lh}
	p.surface.FillRect(bounds, ColorCurrentLine)
}

func (p *painter) group(group FileGroup, line int) {
	if p.visible(line) {
		p.header(group.Path, line)
	}
	if isCollapsed(p.opts.State, group.Path) {
		return
	}

	cursor := line + 1
	for _, d := range group.Diagnostics {
		if cursor > p.maxLine {
			return
		}
		span := p.spans.Diagnostic(d)
		if cursor+span <= p.minLine {
			cursor += span
			continue
		}
		p.diagnostic(d, cursor)
		cursor += span
	}
}

func (p *painter) header(filePath string, line int) {
	p.surface.DrawIcon(Icon{Kind: IconFile, Path: filePath}, p.iconRect(0, line), ColorNone)
	name := p.text(filepath.Base(filePath), p.lh, line, ColorForeground)

	if folder := folderLabel(filePath, p.opts.WorkspaceRoot); folder != "" {
		p.text(folder, name.Width+p.lh+p.opts.Metrics.FolderGap, line, ColorDim)
	}
}

func (p *painter) diagnostic(d diagnostic.Diagnostic, line int) {
	lines := d.MessageLines()

	if len(lines) > 0 && p.hovered(line, len(lines)) {
		p.highlight(line, len(lines))
	}
	if len(lines) > 0 && p.visible(line) {
		p.surface.DrawIcon(SeverityIcon(d.Severity), p.iconRect(1, line), ColorForeground)
	}
	for i, text := range lines {
		if p.visible(line + i) {
			p.text(text, 2*p.lh, line+i, ColorForeground)
		}
	}

	cursor := line + len(lines)
	for _, related := range d.Related {
		if cursor > p.maxLine {
			return
		}
		span := p.spans.Related(related)
		if cursor+span > p.minLine {
			p.related(related, cursor, span)
		}
		cursor += span
	}
}

func (p *painter) related(related diagnostic.RelatedInfo, line, span int) {
	if p.hovered(line, span) {
		p.highlight(line, span)
	}
	if p.visible(line) {
		p.surface.DrawIcon(Icon{Kind: IconLink}, p.iconRect(2, line), ColorForeground)
		p.text(RelatedHeader(related.Location), 3*p.lh, line, ColorDim)
	}
	for i, text := range related.MessageLines() {
		if p.visible(line + 1 + i) {
			p.text(text, 3*p.lh, line+1+i, ColorDim)
		}
	}
}

// RelatedHeader formats the location row of a related entry as
// "name[line, character]:" with zero-based coordinates.
func RelatedHeader(loc diagnostic.Location) string {
	name := path.Base(loc.URI)
	if p, err := loc.Path(); err == nil {
		name = filepath.Base(p)
	}
	return fmt.Sprintf("%s[%d, %d]:", name, loc.Range.Start.Line, loc.Range.Start.Character)
}

// folderLabel returns the parent directory of filePath, relative to root
// when filePath lies inside it. Files at the root have no label.
func folderLabel(filePath, root string) string {
	display := filePath
	if root != "" {
		if rel, err := filepath.Rel(root, filePath); err == nil &&
			rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			display = rel
		}
	}

	parent := filepath.Dir(display)
	if parent == "." {
		return ""
	}
	return parent
}

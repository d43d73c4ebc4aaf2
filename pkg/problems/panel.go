package problems

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/diagview/internal/logging"
	"github.com/yaklabco/diagview/pkg/diagnostic"
)

// Panel is the controller for one severity tab. It keeps only the last
// pointer position and the last measured height; the index is rebuilt from
// the collection on every call.
type Panel struct {
	Severity      diagnostic.Severity
	Metrics       Metrics
	WorkspaceRoot string
	Logger        *log.Logger

	hover         Point
	hovering      bool
	contentHeight float64
}

// NewPanel creates a panel for one severity.
func NewPanel(sev diagnostic.Severity, metrics Metrics, workspaceRoot string, logger *log.Logger) *Panel {
	if logger == nil {
		logger = logging.Default()
	}
	return &Panel{
		Severity:      sev,
		Metrics:       metrics,
		WorkspaceRoot: workspaceRoot,
		Logger:        logger,
	}
}

// Index builds the index this panel shows.
func (p *Panel) Index(coll diagnostic.Collection) Index {
	return BuildIndex(coll, p.Severity)
}

// Layout measures the content and returns the size to request from the
// scroll container: the available width, and at least the available height.
func (p *Panel) Layout(coll diagnostic.Collection, state CollapseState, available Size) Size {
	extent := Measure(p.Index(coll), state, p.Metrics.LineHeight)
	p.contentHeight = extent.Height
	return Size{Width: available.Width, Height: max(extent.Height, available.Height)}
}

// ContentHeight returns the height measured by the last Layout.
func (p *Panel) ContentHeight() float64 {
	return p.contentHeight
}

// Invalidate forgets the measured height after the collection changed.
func (p *Panel) Invalidate() {
	p.contentHeight = 0
}

// MouseMove records the pointer position for hover highlighting and reports
// whether it lies over content, where a click can act.
func (p *Panel) MouseMove(pos Point) bool {
	p.hover = pos
	p.hovering = true
	return pos.Y >= 0 && pos.Y < p.contentHeight
}

// MouseLeave clears the hover position.
func (p *Panel) MouseLeave() {
	p.hovering = false
}

// Hover returns the last pointer position, or nil when the pointer left.
func (p *Panel) Hover() *Point {
	if !p.hovering {
		return nil
	}
	pos := p.hover
	return &pos
}

// MouseDown resolves a click. The returned action is for the caller to
// apply; the panel never changes collapse state itself.
func (p *Panel) MouseDown(pos Point, coll diagnostic.Collection, state CollapseState) Action {
	line := p.Metrics.LineAt(pos.Y)
	action := HitTest(p.Index(coll), state, line, p.Logger)
	p.Logger.Debug("click resolved", logging.FieldLine, line, logging.FieldAction, action)
	return action
}

// Paint draws the visible part of the panel.
func (p *Panel) Paint(surface Surface, coll diagnostic.Collection, state CollapseState, visible Rect) {
	Paint(surface, p.Index(coll), PaintOptions{
		State:         state,
		Metrics:       p.Metrics,
		Visible:       visible,
		Width:         visible.Width(),
		Hover:         p.Hover(),
		WorkspaceRoot: p.WorkspaceRoot,
	})
}

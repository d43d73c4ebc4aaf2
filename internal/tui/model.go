// Package tui hosts the problems panel in a full-screen terminal program.
//
// The screen has a tab row with one tab per severity, the panel body, and a
// help line. Mouse motion drives hover, a left click runs the hit tester and
// the resulting action is applied here: toggles go to the shared collapse
// store, jumps open the editor.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/yaklabco/diagview/internal/logging"
	"github.com/yaklabco/diagview/internal/ui/canvas"
	"github.com/yaklabco/diagview/internal/ui/icons"
	"github.com/yaklabco/diagview/internal/ui/pretty"
	"github.com/yaklabco/diagview/pkg/diagnostic"
	"github.com/yaklabco/diagview/pkg/problems"
)

const (
	tabBarHeight = 1
	wheelStep    = 3
)

// ReloadFunc loads a fresh collection.
type ReloadFunc func(ctx context.Context) (diagnostic.Collection, error)

// Options configures the model.
type Options struct {
	// Severities lists the tabs in order.
	Severities []diagnostic.Severity

	// Metrics are in terminal cells.
	Metrics problems.Metrics

	WorkspaceRoot string
	Icons         *icons.Set
	Styles        *pretty.Styles

	// Editor is the editor command template. Empty means a jump ends the
	// program and the location is reported through Jump.
	Editor string

	// Reload is called for ReloadMsg and the reload key. Nil disables reloading.
	Reload ReloadFunc

	Logger *log.Logger
}

// ReloadMsg asks the model to reload its inputs.
type ReloadMsg struct{}

type loadedMsg struct {
	coll diagnostic.Collection
	err  error
}

type editorClosedMsg struct {
	err error
}

// Model is the bubbletea model for the panel.
type Model struct {
	opts   Options
	logger *log.Logger

	coll   diagnostic.Collection
	store  *problems.CollapseStore
	panels []*problems.Panel
	scroll []int
	tab    int

	width  int
	height int

	keys   keyMap
	help   help.Model
	status string
	jump   *problems.JumpToLocation
}

// New creates a model showing coll.
func New(coll diagnostic.Collection, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Styles == nil {
		opts.Styles = pretty.NewStyles(false)
	}
	if opts.Icons == nil {
		opts.Icons = icons.NewSet("")
	}
	if opts.Metrics.LineHeight <= 0 {
		opts.Metrics = problems.CellMetrics()
	}
	if len(opts.Severities) == 0 {
		opts.Severities = []diagnostic.Severity{diagnostic.SeverityError, diagnostic.SeverityWarning}
	}
	if coll == nil {
		coll = diagnostic.Collection{}
	}

	m := &Model{
		opts:   opts,
		logger: opts.Logger,
		coll:   coll,
		store:  problems.NewCollapseStore(),
		scroll: make([]int, len(opts.Severities)),
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	for _, sev := range opts.Severities {
		m.panels = append(m.panels, problems.NewPanel(sev, opts.Metrics, opts.WorkspaceRoot, opts.Logger))
	}
	return m
}

// Jump returns the location chosen when no editor is configured, or nil.
func (m *Model) Jump() *problems.JumpToLocation {
	return m.jump
}

// Collapsed returns a copy of the collapse state.
func (m *Model) Collapsed() problems.CollapseMap {
	return m.store.Snapshot()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case ReloadMsg:
		return m, m.reload()

	case loadedMsg:
		if msg.err != nil {
			m.logger.Error("reload failed", logging.FieldError, msg.err)
			m.status = "reload failed: " + msg.err.Error()
			return m, nil
		}
		m.coll = msg.coll
		for _, p := range m.panels {
			p.Invalidate()
		}
		m.status = ""
		m.layout()
		return m, nil

	case editorClosedMsg:
		if msg.err != nil {
			m.logger.Error("editor failed", logging.FieldError, msg.err)
			m.status = "editor failed: " + msg.err.Error()
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) panel() *problems.Panel {
	return m.panels[m.tab]
}

func (m *Model) lineHeight() float64 {
	return m.opts.Metrics.LineHeight
}

func (m *Model) helpView() string {
	view := m.help.View(m.keys)
	if m.status != "" {
		view = m.opts.Styles.Failure.Render(m.status) + "  " + view
	}
	return view
}

func (m *Model) bodyHeight() int {
	return max(m.height-tabBarHeight-lipgloss.Height(m.helpView()), 0)
}

// layout remeasures the active panel and clamps its scroll offset.
func (m *Model) layout() {
	panel := m.panel()
	panel.Layout(m.coll, m.store, problems.Size{Width: float64(m.width), Height: float64(m.bodyHeight())})
	m.clampScroll()
}

func (m *Model) maxScroll() int {
	return max(int(m.panel().ContentHeight())-m.bodyHeight(), 0)
}

func (m *Model) clampScroll() {
	m.scroll[m.tab] = min(max(m.scroll[m.tab], 0), m.maxScroll())
}

func (m *Model) scrollBy(delta int) {
	m.scroll[m.tab] += delta
	m.clampScroll()
}

// totalLines is the number of flattened lines in the active panel.
func (m *Model) totalLines() int {
	return problems.Spans{State: m.store}.Total(m.panel().Index(m.coll))
}

// contentPoint maps a screen cell inside the body to content coordinates.
func (m *Model) contentPoint(x, y int) problems.Point {
	return problems.Point{X: float64(x), Y: float64(y - tabBarHeight + m.scroll[m.tab])}
}

func (m *Model) inBody(y int) bool {
	return y >= tabBarHeight && y < tabBarHeight+m.bodyHeight()
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollBy(-wheelStep)
		return m, nil

	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollBy(wheelStep)
		return m, nil

	case msg.Action == tea.MouseActionMotion:
		if m.inBody(msg.Y) {
			m.panel().MouseMove(m.contentPoint(msg.X, msg.Y))
		} else {
			m.panel().MouseLeave()
		}
		return m, nil

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.Y < tabBarHeight {
			if tab := m.tabAt(msg.X); tab >= 0 {
				m.selectTab(tab)
			}
			return m, nil
		}
		if !m.inBody(msg.Y) {
			return m, nil
		}
		pos := m.contentPoint(msg.X, msg.Y)
		m.panel().MouseMove(pos)
		return m, m.apply(m.panel().MouseDown(pos, m.coll, m.store))
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	case key.Matches(msg, m.keys.NextTab):
		m.selectTab((m.tab + 1) % len(m.panels))
	case key.Matches(msg, m.keys.PrevTab):
		m.selectTab((m.tab + len(m.panels) - 1) % len(m.panels))
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.pageLines())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.pageLines())
	case key.Matches(msg, m.keys.Top):
		m.setCursor(0)
	case key.Matches(msg, m.keys.Bottom):
		m.setCursor(m.totalLines() - 1)
	case key.Matches(msg, m.keys.Activate):
		line, ok := m.cursorLine()
		if !ok {
			return m, nil
		}
		pos := problems.Point{Y: float64(line) * m.lineHeight()}
		return m, m.apply(m.panel().MouseDown(pos, m.coll, m.store))
	case key.Matches(msg, m.keys.Collapse):
		m.setAllCollapsed(true)
	case key.Matches(msg, m.keys.Expand):
		m.setAllCollapsed(false)
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	}
	return m, nil
}

// apply carries out a click action.
func (m *Model) apply(action problems.Action) tea.Cmd {
	switch a := action.(type) {
	case problems.ToggleCollapse:
		m.store.Apply(a)
		m.layout()
		return nil

	case problems.JumpToLocation:
		if m.opts.Editor == "" {
			m.jump = &a
			return tea.Quit
		}
		cmd, err := EditorCommand(m.opts.Editor, a)
		if err != nil {
			m.logger.Error("editor command", logging.FieldError, err)
			m.status = err.Error()
			return nil
		}
		m.logger.Debug("opening editor", logging.FieldPath, a.Path, logging.FieldLine, a.Position.Line)
		return tea.ExecProcess(cmd, func(err error) tea.Msg {
			return editorClosedMsg{err: err}
		})

	default:
		return nil
	}
}

func (m *Model) reload() tea.Cmd {
	if m.opts.Reload == nil {
		return nil
	}
	reload := m.opts.Reload
	return func() tea.Msg {
		coll, err := reload(context.Background())
		return loadedMsg{coll: coll, err: err}
	}
}

func (m *Model) selectTab(tab int) {
	if tab == m.tab {
		return
	}
	m.panel().MouseLeave()
	m.tab = tab
	m.layout()
}

// tabLabels renders the tab row cells.
func (m *Model) tabLabels() []string {
	labels := make([]string, len(m.panels))
	for i, p := range m.panels {
		labels[i] = m.opts.Styles.FormatTab(p.Severity, m.coll.Count(p.Severity), i == m.tab)
	}
	return labels
}

// tabAt returns the tab under column x, or -1.
func (m *Model) tabAt(x int) int {
	start := 0
	for i, label := range m.tabLabels() {
		end := start + lipgloss.Width(label)
		if x >= start && x < end {
			return i
		}
		start = end
	}
	return -1
}

func (m *Model) pageLines() int {
	return max(int(float64(m.bodyHeight())/m.lineHeight()), 1)
}

func (m *Model) cursorLine() (int, bool) {
	hover := m.panel().Hover()
	if hover == nil {
		return 0, false
	}
	return m.opts.Metrics.LineAt(hover.Y), true
}

func (m *Model) moveCursor(delta int) {
	line, ok := m.cursorLine()
	if !ok {
		line = int(float64(m.scroll[m.tab]) / m.lineHeight())
		delta = 0
	}
	m.setCursor(line + delta)
}

// setCursor places the hover on line and scrolls it into view.
func (m *Model) setCursor(line int) {
	total := m.totalLines()
	if total == 0 {
		return
	}
	line = min(max(line, 0), total-1)

	lh := m.lineHeight()
	m.panel().MouseMove(problems.Point{Y: float64(line) * lh})

	top := int(float64(line) * lh)
	bottom := int(float64(line+1) * lh)
	switch {
	case top < m.scroll[m.tab]:
		m.scroll[m.tab] = top
	case bottom > m.scroll[m.tab]+m.bodyHeight():
		m.scroll[m.tab] = bottom - m.bodyHeight()
	}
	m.clampScroll()
}

// setAllCollapsed toggles every file of the active tab whose state differs.
func (m *Model) setAllCollapsed(collapsed bool) {
	for _, group := range m.panel().Index(m.coll) {
		if m.store.IsCollapsed(group.Path) != collapsed {
			m.store.Apply(problems.ToggleCollapse{Path: group.Path})
		}
	}
	m.layout()
	m.panel().MouseLeave()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	tabs := lipgloss.JoinHorizontal(lipgloss.Top, m.tabLabels()...)

	bodyHeight := m.bodyHeight()
	surface := canvas.New(m.width, bodyHeight, m.scroll[m.tab], m.opts.Icons, m.opts.Styles)
	panel := m.panel()
	if len(panel.Index(m.coll)) == 0 {
		surface.DrawText(fmt.Sprintf("No %s", strings.ToLower(panel.Severity.Title())),
			problems.Point{X: 1, Y: float64(m.scroll[m.tab])}, problems.ColorDim)
	} else {
		panel.Paint(surface, m.coll, m.store, surface.Visible())
	}

	parts := []string{tabs}
	if bodyHeight > 0 {
		parts = append(parts, surface.Render())
	}
	parts = append(parts, m.helpView())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

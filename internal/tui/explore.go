package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/hsflores7/folio/internal/brush"
	"github.com/hsflores7/folio/internal/commits"
	"github.com/hsflores7/folio/internal/explore"
	"github.com/hsflores7/folio/internal/parse"
	"github.com/hsflores7/folio/internal/plot"
	"github.com/hsflores7/folio/internal/render"
	"github.com/hsflores7/folio/internal/tooltip"
)

// Screen layout of the explorer: a stats row, the canvas with its y labels
// and side panel, the x axis row and the status bar.
const (
	canvasTop = 1
	yLabelW   = 6
	panelW    = 30
	minCols   = 20
	minRows   = 8
)

// message types

type countFiredMsg struct {
	token uint64
}

type loadedMsg struct {
	records []parse.LineRecord
}

type statusMsg string

// ExploreConfig is what the explorer needs besides the data itself.
type ExploreConfig struct {
	Options   plot.Options
	LOCSource string
	URLBase   string
	// Copy and Open default to the clipboard and the browser.
	Copy func(string) error
	Open func(string) error
}

type exploreModel struct {
	cfg   ExploreConfig
	state explore.State

	width    int
	height   int
	ready    bool
	quitting bool

	dragging  bool
	dragMoved bool
	anchor    cellPos
	hover     int // point under the pointer, -1 for none
	status    string
}

func newExploreModel(cfg ExploreConfig, records []parse.LineRecord) exploreModel {
	m := exploreModel{
		cfg:   cfg,
		state: explore.New(cfg.Options),
		hover: -1,
	}
	m.dispatch(explore.Loaded{Records: records})
	return m
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

// dispatch feeds ev to the explorer state and schedules any timer it asks
// for.
func (m *exploreModel) dispatch(ev explore.Event) tea.Cmd {
	next, res := explore.Update(m.state, ev)
	m.state = next
	if res.Timer == nil {
		return nil
	}
	token := res.Timer.Token
	return tea.Tick(res.Timer.Delay, func(time.Time) tea.Msg {
		return countFiredMsg{token: token}
	})
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit), msg.String() == "q":
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Clear):
			m.dragging = false
			return m, m.dispatch(explore.BrushChanged{Region: nil})

		case key.Matches(msg, keys.Enter):
			return m, m.withPinnedURL(m.cfg.Copy, "Copied ")

		case key.Matches(msg, keys.Open):
			return m, m.withPinnedURL(m.cfg.Open, "Opened ")

		case key.Matches(msg, keys.Reload):
			if m.cfg.LOCSource == "" {
				return m, nil
			}
			m.status = "reloading..."
			return m, loadRecordsCmd(m.cfg.LOCSource)
		}
		return m, nil

	case tea.MouseMsg:
		if !m.ready {
			return m, nil
		}
		return m.handleMouse(msg)

	case countFiredMsg:
		return m, m.dispatch(explore.CountTimerFired{Token: msg.token})

	case loadedMsg:
		m.dragging = false
		m.hover = -1
		m.status = fmt.Sprintf("loaded %d commits", len(commits.Aggregate(msg.records)))
		return m, m.dispatch(explore.Loaded{Records: msg.records})

	case statusMsg:
		m.status = string(msg)
		return m, nil
	}

	return m, nil
}

func (m exploreModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	g := m.geometry()
	pos := cellPos{Col: msg.X - yLabelW, Row: msg.Y - canvasTop}
	inside := g.contains(pos) && !m.state.Plot.Empty()
	pointer := tooltip.Vec{X: pos.Col, Y: pos.Row}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !inside {
			return m, m.dispatch(explore.Pointer{Event: tooltip.Event{Kind: tooltip.OutsideClick}})
		}
		// presses on the tooltip itself neither unpin nor start a brush
		if box, ok := m.tooltipRect(g); ok && box.contains(pos) {
			return m, nil
		}
		x, y := g.center(pos)
		if hit := m.state.Plot.HitTest(x, y, g.slop()); hit >= 0 {
			return m, m.dispatch(explore.Pointer{Event: tooltip.Event{Kind: tooltip.Click, Target: hit, Pointer: pointer}})
		}
		m.dragging = true
		m.dragMoved = false
		m.anchor = pos
		return m, m.dispatch(explore.Pointer{Event: tooltip.Event{Kind: tooltip.OutsideClick}})

	case msg.Action == tea.MouseActionMotion && m.dragging:
		cur := g.cell(g.center(pos))
		if cur != m.anchor {
			m.dragMoved = true
		}
		if !m.dragMoved {
			return m, nil
		}
		region := g.span(m.anchor, cur)
		return m, m.dispatch(explore.BrushChanged{Region: &region})

	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.dragging = false
		if !m.dragMoved {
			// a click without a drag clears the brush
			return m, m.dispatch(explore.BrushChanged{Region: nil})
		}
		return m, nil

	case msg.Action == tea.MouseActionMotion:
		hit := -1
		if inside {
			x, y := g.center(pos)
			hit = m.state.Plot.HitTest(x, y, g.slop())
		}
		var cmds []tea.Cmd
		switch {
		case hit >= 0 && hit == m.hover:
			cmds = append(cmds, m.dispatch(explore.Pointer{Event: tooltip.Event{Kind: tooltip.Move, Target: hit, Pointer: pointer}}))
		case hit >= 0:
			if m.hover >= 0 {
				cmds = append(cmds, m.dispatch(explore.Pointer{Event: tooltip.Event{Kind: tooltip.Leave, Target: m.hover}}))
			}
			cmds = append(cmds, m.dispatch(explore.Pointer{Event: tooltip.Event{Kind: tooltip.Enter, Target: hit, Pointer: pointer}}))
		case m.hover >= 0:
			cmds = append(cmds, m.dispatch(explore.Pointer{Event: tooltip.Event{Kind: tooltip.Leave, Target: m.hover}}))
		}
		m.hover = hit
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

// withPinnedURL runs fn on the pinned commit's URL.
func (m exploreModel) withPinnedURL(fn func(string) error, verb string) tea.Cmd {
	if m.state.Tooltip.State != tooltip.Pinned {
		return nil
	}
	c, ok := m.state.TooltipCommit()
	if !ok || m.cfg.URLBase == "" || fn == nil {
		return nil
	}
	url := c.URL(m.cfg.URLBase)
	return func() tea.Msg {
		if err := fn(url); err != nil {
			return statusMsg(fmt.Sprintf("%s (%v)", url, err))
		}
		return statusMsg(verb + url)
	}
}

func loadRecordsCmd(source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return loadedMsg{records: parse.LoadLOC(ctx, source)}
	}
}

// layout

func (m exploreModel) canvasSize() (cols, rows int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = 120
	}
	if h <= 0 {
		h = 30
	}
	cols = max(w-yLabelW-panelW-1, minCols)
	rows = max(h-3, minRows)
	return cols, rows
}

func (m exploreModel) geometry() geometry {
	cols, rows := m.canvasSize()
	return geometry{area: m.state.Plot.Area, cols: cols, rows: rows}
}

// View renders the explorer.
func (m exploreModel) View() string {
	if m.quitting || !m.ready {
		return ""
	}
	g := m.geometry()

	canvas := m.drawCanvas(g).lines()
	labels := m.yLabels(g)
	rows := make([]string, g.rows)
	for i := range rows {
		rows[i] = labels[i] + canvas[i]
	}
	left := strings.Join(rows, "\n")

	panel := stylePanelBorder.
		Width(panelW - 2).
		Height(g.rows - 2).
		Render(m.panel(panelW - 2))

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", panel)
	xAxis := strings.Repeat(" ", yLabelW) + styleAxis.Render(m.xLabels(g))

	return lipgloss.JoinVertical(lipgloss.Left, m.statsRow(), body, xAxis, m.statusBar())
}

// drawCanvas paints the brush, the points and the tooltip.
func (m exploreModel) drawCanvas(g geometry) *grid {
	s := m.state
	out := newGrid(g.cols, g.rows)

	if s.Plot.Empty() {
		msg := "No commit data"
		out.text(max(0, (g.cols-len(msg))/2), g.rows/2, msg, stAxis)
		return out
	}

	if r := s.Brush.Region(); r != nil {
		for row := 0; row < g.rows; row++ {
			for col := 0; col < g.cols; col++ {
				x, y := g.center(cellPos{col, row})
				if r.Contains(brush.Pos{X: x, Y: y}) {
					out.shade(col, row)
				}
			}
		}
	}

	focus := m.hover
	if s.Tooltip.Visible() {
		focus = s.Tooltip.Target
	}
	for i, pt := range s.Plot.Points {
		c := g.cell(pt.CX, pt.CY)
		st := stDay
		switch {
		case i == focus:
			st = stFocus
		case s.Brush.IsSelected(i):
			st = stSelected
		case pt.Night:
			st = stNight
		}
		out.set(c.Col, c.Row, glyph(pt.R, s.Options), st)
	}

	if box, ok := m.tooltipRect(g); ok {
		for i, l := range box.lines {
			y := box.at.Y + i
			for x := box.at.X; x < box.at.X+box.size.X; x++ {
				out.set(x, y, ' ', stTooltip)
				if c := out.at(x, y); c != nil {
					c.brushed = false
				}
			}
			out.text(box.at.X+1, y, l, stTooltip)
		}
	}
	return out
}

// tooltipBox is the tooltip's position, size and text in canvas cells.
type tooltipBox struct {
	at, size tooltip.Vec
	lines    []string
}

func (b tooltipBox) contains(c cellPos) bool {
	return c.Col >= b.at.X && c.Col < b.at.X+b.size.X &&
		c.Row >= b.at.Y && c.Row < b.at.Y+b.size.Y
}

// tooltipRect lays out the visible tooltip, if any.
func (m exploreModel) tooltipRect(g geometry) (tooltipBox, bool) {
	s := m.state
	c, ok := s.TooltipCommit()
	if !ok {
		return tooltipBox{}, false
	}
	lines := tooltipLines(c, s.Tooltip.State == tooltip.Pinned && m.cfg.URLBase != "")
	width := 0
	for _, l := range lines {
		width = max(width, runewidth.StringWidth(l))
	}
	size := tooltip.Vec{X: width + 2, Y: len(lines)}
	return tooltipBox{
		at:    tooltip.Place(s.Tooltip.Pointer, size, tooltip.Vec{X: g.cols, Y: g.rows}),
		size:  size,
		lines: lines,
	}, true
}

func tooltipLines(c commits.CommitSummary, pinned bool) []string {
	id := c.ID
	if len(id) > 12 {
		id = id[:12]
	}
	lines := []string{"Commit  " + id}
	if c.Datetime != nil {
		lines = append(lines,
			"Date    "+c.Datetime.Format("Monday, January 2, 2006"),
			"Time    "+c.Datetime.Format("3:04 PM"),
		)
	}
	lines = append(lines,
		"Author  "+c.Author,
		fmt.Sprintf("Lines   %d", c.TotalLines),
	)
	if pinned {
		lines = append(lines, "enter copy link · o open")
	}
	return lines
}

func (m exploreModel) yLabels(g geometry) []string {
	labels := make([]string, g.rows)
	for i := range labels {
		labels[i] = strings.Repeat(" ", yLabelW)
	}
	for _, t := range m.state.Plot.YTicks {
		row := g.cell(g.area.Left, t.Pos).Row
		labels[row] = styleAxis.Render(fmt.Sprintf("%*s ", yLabelW-1, t.Label))
	}
	return labels
}

func (m exploreModel) xLabels(g geometry) string {
	line := []rune(strings.Repeat(" ", g.cols))
	next := 0
	for _, t := range m.state.Plot.XTicks {
		col := g.cell(t.Pos, g.area.Top).Col
		label := []rune(t.Label)
		if col < next || col+len(label) > g.cols {
			continue
		}
		copy(line[col:], label)
		next = col + len(label) + 1
	}
	return string(line)
}

func (m exploreModel) statsRow() string {
	var parts []string
	for _, s := range render.StatItems(m.state.Stats) {
		parts = append(parts, styleTitle.Render(s.Label+":")+" "+s.Value)
	}
	return strings.Join(parts, "  ")
}

// panel lists the selection count and the language breakdown.
func (m exploreModel) panel(width int) string {
	var lines []string
	lines = append(lines, styleTitle.Render("Selection"), m.state.CountLabel, "")
	lines = append(lines, styleTitle.Render("Languages"))
	if len(m.state.Breakdown) == 0 {
		lines = append(lines, styleAxis.Render("brush to select"))
	}
	for _, e := range m.state.Breakdown {
		row := fmt.Sprintf("%-8s %5d  %6s", e.Type, e.Count, e.Percent)
		lines = append(lines, runewidth.Truncate(row, width, ""))
	}
	return strings.Join(lines, "\n")
}

func (m exploreModel) statusBar() string {
	parts := []string{
		"drag brush",
		"click pin",
		"c clear",
		"enter copy link",
		"o open",
		"r reload",
		"esc quit",
	}
	if m.status != "" {
		parts = append([]string{m.status}, parts...)
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

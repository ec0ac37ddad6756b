package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/hsflores7/folio/internal/parse"
	"github.com/hsflores7/folio/internal/plot"
	"github.com/hsflores7/folio/internal/search"
	"github.com/hsflores7/folio/internal/tooltip"
)

func at(t *testing.T, s string) *time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return &v
}

func exploreRecords(t *testing.T) []parse.LineRecord {
	a := at(t, "2025-02-11T09:00:00-08:00")
	b := at(t, "2025-02-14T15:00:00-08:00")
	return []parse.LineRecord{
		{Commit: "aaaaaaa1", Author: "hf", Datetime: a, Type: "js"},
		{Commit: "aaaaaaa1", Author: "hf", Datetime: a, Type: "js"},
		{Commit: "aaaaaaa1", Author: "hf", Datetime: a, Type: "js"},
		{Commit: "bbbbbbb2", Author: "hf", Datetime: b, Type: "css"},
		{Commit: "bbbbbbb2", Author: "hf", Datetime: b, Type: "css"},
	}
}

type fakeSink struct{ urls []string }

func (f *fakeSink) write(s string) error {
	f.urls = append(f.urls, s)
	return nil
}

func newTestExplorer(t *testing.T, sink *fakeSink) exploreModel {
	t.Helper()
	m := newExploreModel(ExploreConfig{
		Options: plot.DefaultOptions(),
		URLBase: "https://example.com/commit",
		Copy:    sink.write,
		Open:    sink.write,
	}, exploreRecords(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return next.(exploreModel)
}

func step(t *testing.T, m exploreModel, msg tea.Msg) (exploreModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(exploreModel), cmd
}

// screenOf returns the terminal position of the plotted commit id.
func screenOf(t *testing.T, m exploreModel, id string) (int, int, int) {
	t.Helper()
	g := m.geometry()
	for i, pt := range m.state.Plot.Points {
		if pt.Commit.ID == id {
			c := g.cell(pt.CX, pt.CY)
			return c.Col + yLabelW, c.Row + canvasTop, i
		}
	}
	t.Fatalf("commit %s not plotted", id)
	return 0, 0, 0
}

func mouse(x, y int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func TestExploreClickPinsAndCopies(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	m := newTestExplorer(t, sink)
	x, y, idx := screenOf(t, m, "aaaaaaa1")

	m, _ = step(t, m, mouse(x, y, tea.MouseActionPress, tea.MouseButtonLeft))
	require.Equal(t, tooltip.Pinned, m.state.Tooltip.State)
	require.Equal(t, idx, m.state.Tooltip.Target)
	require.False(t, m.dragging)

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	require.Equal(t, statusMsg("Copied https://example.com/commit/aaaaaaa1"), msg)
	require.Equal(t, []string{"https://example.com/commit/aaaaaaa1"}, sink.urls)

	m, _ = step(t, m, msg)
	require.Contains(t, m.View(), "Copied https://example.com/commit/aaaaaaa1")
	require.Contains(t, m.View(), "Commit  aaaaaaa1")

	// clicking outside the canvas unpins
	m, _ = step(t, m, mouse(0, 0, tea.MouseActionPress, tea.MouseButtonLeft))
	require.Equal(t, tooltip.Hidden, m.state.Tooltip.State)
}

func TestExploreClickOnTooltipKeepsPin(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	m := newTestExplorer(t, sink)
	x, y, idx := screenOf(t, m, "aaaaaaa1")
	m, _ = step(t, m, mouse(x, y, tea.MouseActionPress, tea.MouseButtonLeft))
	require.Equal(t, tooltip.Pinned, m.state.Tooltip.State)

	box, ok := m.tooltipRect(m.geometry())
	require.True(t, ok)
	last := len(box.lines) - 1
	require.Equal(t, "enter copy link · o open", box.lines[last])

	// press on the hint line, away from the point itself
	bx := box.at.X + box.size.X - 1 + yLabelW
	by := box.at.Y + last + canvasTop
	m, cmd := step(t, m, mouse(bx, by, tea.MouseActionPress, tea.MouseButtonLeft))
	require.Nil(t, cmd)
	require.Equal(t, tooltip.Pinned, m.state.Tooltip.State)
	require.Equal(t, idx, m.state.Tooltip.Target)
	require.False(t, m.dragging)

	m, _ = step(t, m, mouse(bx, by, tea.MouseActionRelease, tea.MouseButtonLeft))
	require.Equal(t, tooltip.Pinned, m.state.Tooltip.State)

	_, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	cmd()
	require.Equal(t, []string{"https://example.com/commit/aaaaaaa1"}, sink.urls)
}

func TestExploreCopyNeedsPinnedTooltip(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	m := newTestExplorer(t, sink)
	_, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Empty(t, sink.urls)
}

func TestExploreHover(t *testing.T) {
	t.Parallel()

	m := newTestExplorer(t, &fakeSink{})
	x, y, idx := screenOf(t, m, "bbbbbbb2")

	m, _ = step(t, m, mouse(x, y, tea.MouseActionMotion, tea.MouseButtonNone))
	require.Equal(t, tooltip.Hovering, m.state.Tooltip.State)
	require.Equal(t, idx, m.state.Tooltip.Target)
	require.Equal(t, idx, m.hover)

	m, _ = step(t, m, mouse(yLabelW, canvasTop, tea.MouseActionMotion, tea.MouseButtonNone))
	require.Equal(t, tooltip.Hidden, m.state.Tooltip.State)
	require.Equal(t, -1, m.hover)
}

func TestExploreBrushDrag(t *testing.T) {
	t.Parallel()

	m := newTestExplorer(t, &fakeSink{})
	cols, rows := m.canvasSize()

	// top-left corner is empty: hour ~23.5 on the first day
	m, cmd := step(t, m, mouse(yLabelW, canvasTop, tea.MouseActionPress, tea.MouseButtonLeft))
	require.True(t, m.dragging)
	require.Nil(t, cmd)

	m, cmd = step(t, m, mouse(yLabelW+cols-1, canvasTop+rows-1, tea.MouseActionMotion, tea.MouseButtonLeft))
	require.NotNil(t, cmd, "count update is debounced")
	require.Len(t, m.state.SelectedCommits(), 2)
	require.Len(t, m.state.Breakdown, 2, "breakdown publishes immediately")
	require.Equal(t, "No commits selected", m.state.CountLabel)

	m, _ = step(t, m, cmd())
	require.Equal(t, "2 commits selected", m.state.CountLabel)

	m, _ = step(t, m, mouse(yLabelW+cols-1, canvasTop+rows-1, tea.MouseActionRelease, tea.MouseButtonLeft))
	require.False(t, m.dragging)
	require.NotNil(t, m.state.Brush.Region(), "drag keeps its brush")
	require.Contains(t, m.View(), "2 commits selected")

	// a click without a drag clears
	m, _ = step(t, m, mouse(yLabelW, canvasTop, tea.MouseActionPress, tea.MouseButtonLeft))
	m, _ = step(t, m, mouse(yLabelW, canvasTop, tea.MouseActionRelease, tea.MouseButtonLeft))
	require.Nil(t, m.state.Brush.Region())
	require.Equal(t, "No commits selected", m.state.CountLabel)
	require.Empty(t, m.state.Breakdown)
}

func TestExploreClearKey(t *testing.T) {
	t.Parallel()

	m := newTestExplorer(t, &fakeSink{})
	cols, rows := m.canvasSize()
	m, _ = step(t, m, mouse(yLabelW, canvasTop, tea.MouseActionPress, tea.MouseButtonLeft))
	m, _ = step(t, m, mouse(yLabelW+cols-1, canvasTop+rows-1, tea.MouseActionMotion, tea.MouseButtonLeft))
	require.NotEmpty(t, m.state.Breakdown)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	require.Nil(t, m.state.Brush.Region())
	require.False(t, m.dragging)
	require.Empty(t, m.state.Breakdown)
}

func TestExploreLoaded(t *testing.T) {
	t.Parallel()

	m := newTestExplorer(t, &fakeSink{})
	m, _ = step(t, m, loadedMsg{})
	require.True(t, m.state.Plot.Empty())
	require.Equal(t, "loaded 0 commits", m.status)
	require.Contains(t, m.View(), "No commit data")
}

func TestTooltipLines(t *testing.T) {
	t.Parallel()

	m := newTestExplorer(t, &fakeSink{})
	c := m.state.Commits[0]
	lines := tooltipLines(c, true)
	require.Equal(t, []string{
		"Commit  aaaaaaa1",
		"Date    Tuesday, February 11, 2025",
		"Time    9:00 AM",
		"Author  hf",
		"Lines   3",
		"enter copy link · o open",
	}, lines)
	require.Len(t, tooltipLines(c, false), 5)
}

func TestGeometry(t *testing.T) {
	t.Parallel()

	g := geometry{area: plot.Area{Left: 50, Top: 10, Right: 990, Bottom: 570}, cols: 94, rows: 28}
	for _, c := range []cellPos{{0, 0}, {10, 5}, {93, 27}} {
		require.Equal(t, c, g.cell(g.center(c)))
	}
	require.Equal(t, cellPos{0, 0}, g.cell(-100, -100))
	require.Equal(t, cellPos{93, 27}, g.cell(5000, 5000))

	r := g.span(cellPos{3, 4}, cellPos{1, 2})
	require.InDelta(t, 60, r.X0, 1e-9)
	require.InDelta(t, 50, r.Y0, 1e-9)
	require.InDelta(t, 90, r.X1, 1e-9)
	require.InDelta(t, 110, r.Y1, 1e-9)
	require.False(t, r.Empty())
}

func TestGridText(t *testing.T) {
	t.Parallel()

	g := newGrid(6, 2)
	require.Equal(t, 4, g.text(0, 0, "日本", stPlain))
	require.Equal(t, 2, g.text(4, 1, "abc", stPlain), "clipped at the edge")
	require.Equal(t, []string{"日本  ", "    ab"}, g.plain())

	g.set(1, 0, 'x', stPlain)
	require.Equal(t, " x本  ", g.plain()[0])
	require.Equal(t, g.plain(), g.lines(), "plain cells render unstyled")
}

func TestGlyph(t *testing.T) {
	t.Parallel()

	o := plot.DefaultOptions()
	require.Equal(t, '·', glyph(o.RMin, o))
	require.Equal(t, '•', glyph((o.RMin+o.RMax)/2, o))
	require.Equal(t, '●', glyph(o.RMax, o))
}

const projectsFixture = `[
  {"title": "Robot Arm", "year": "2024", "description": "Six-axis servo controller"},
  {"title": "Weather", "year": "2023", "description": "Forecast viz"},
  {"title": "Pie Chart", "year": "2024", "description": "D3 practice"},
  {"title": "Old Site", "year": "2022"}
]`

func newTestProjects(t *testing.T) projectsModel {
	t.Helper()
	all, err := parse.ParseProjects(strings.NewReader(projectsFixture))
	require.NoError(t, err)
	m := newProjectsModel(all, search.Facets{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(projectsModel)
}

func pstep(t *testing.T, m projectsModel, msg tea.Msg) projectsModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(projectsModel)
}

func TestProjectsQuery(t *testing.T) {
	t.Parallel()

	m := newTestProjects(t)
	require.Len(t, m.view.Projects, 4)

	m = pstep(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("servo")})
	require.Equal(t, "servo", m.facets.Query)
	require.Len(t, m.view.Projects, 1)
	require.Equal(t, []search.Slice{{Label: "2024", Value: 1}}, m.view.Slices)
	require.Contains(t, m.View(), "1 Projects")
}

func TestProjectsToggleYearByKey(t *testing.T) {
	t.Parallel()

	m := newTestProjects(t)
	m = pstep(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "2024", m.facets.Year)
	require.Len(t, m.view.Projects, 2)
	require.Len(t, m.view.Slices, 3, "pie ignores the year facet")

	m = pstep(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "", m.facets.Year)
	require.Len(t, m.view.Projects, 4)

	m = pstep(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = pstep(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "2023", m.facets.Year)

	m = pstep(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, 0, m.focus)
}

func TestProjectsClickLegendAndBar(t *testing.T) {
	t.Parallel()

	m := newTestProjects(t)
	legend := legendSpans(m.view.Slices)
	m = pstep(t, m, tea.MouseMsg{X: legend[2].X0, Y: rowLegend, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.Equal(t, "2022", m.facets.Year)
	require.Equal(t, "Old Site", m.view.Projects[0].Title)

	bar := barSpans(m.view.Slices, m.contentWidth())
	m = pstep(t, m, tea.MouseMsg{X: bar[2].X0, Y: rowBar, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.Equal(t, "", m.facets.Year, "clicking the selected year clears it")
}

func TestProjectsEmpty(t *testing.T) {
	t.Parallel()

	m := newTestProjects(t)
	m = pstep(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("zzz")})
	require.Empty(t, m.view.Projects)
	require.Contains(t, m.View(), "No projects found.")
}

func TestBarSpans(t *testing.T) {
	t.Parallel()

	slices := []search.Slice{{Label: "a", Value: 2}, {Label: "b", Value: 1}, {Label: "c", Value: 1}}
	spans := barSpans(slices, 10)
	require.Len(t, spans, 3)
	require.Equal(t, [2]int{0, 5}, [2]int{spans[0].X0, spans[0].X1})
	require.Equal(t, [2]int{5, 8}, [2]int{spans[1].X0, spans[1].X1})
	require.Equal(t, [2]int{8, 10}, [2]int{spans[2].X0, spans[2].X1})

	require.Nil(t, barSpans(slices, 2))
	require.Nil(t, barSpans(nil, 10))

	s, ok := spanAt(spans, 6)
	require.True(t, ok)
	require.Equal(t, "b", s.Label)
	_, ok = spanAt(spans, 10)
	require.False(t, ok)
}

package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/hsflores7/folio/internal/parse"
	"github.com/hsflores7/folio/internal/render"
	"github.com/hsflores7/folio/internal/search"
)

// Screen rows of the projects view.
const (
	rowInput  = 0
	rowTitle  = 1
	rowBar    = 2
	rowLegend = 3
	rowCards  = 5

	linesPerCard = 3
)

// span is a clickable horizontal range [X0, X1) for one year.
type span struct {
	X0, X1 int
	Label  string
	Color  string
}

type projectsModel struct {
	all    []parse.Project
	facets search.Facets
	view   search.View

	input  textinput.Model
	focus  int // legend cursor
	offset int // first visible card

	width    int
	height   int
	ready    bool
	quitting bool
}

func newProjectsModel(all []parse.Project, facets search.Facets) projectsModel {
	ti := textinput.New()
	ti.Placeholder = "Search projects..."
	ti.Focus()
	ti.SetValue(facets.Query)
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	m := projectsModel{all: all, facets: facets, input: ti}
	m.refresh()
	return m
}

// refresh recomputes the view from the full list and both facets.
func (m *projectsModel) refresh() {
	m.view = m.facets.Apply(m.all)
	if m.focus >= len(m.view.Slices) {
		m.focus = max(0, len(m.view.Slices)-1)
	}
	m.offset = min(m.offset, max(0, len(m.view.Projects)-1))
}

func (m *projectsModel) toggle(year string) {
	m.facets = m.facets.ToggleYear(year)
	m.offset = 0
	m.refresh()
}

func (m projectsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m projectsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.NextYear):
			if n := len(m.view.Slices); n > 0 {
				m.focus = (m.focus + 1) % n
			}
			return m, nil

		case key.Matches(msg, keys.PrevYear):
			if n := len(m.view.Slices); n > 0 {
				m.focus = (m.focus - 1 + n) % n
			}
			return m, nil

		case key.Matches(msg, keys.Enter):
			if m.focus < len(m.view.Slices) {
				m.toggle(m.view.Slices[m.focus].Label)
			}
			return m, nil

		case key.Matches(msg, keys.Up):
			if m.offset > 0 {
				m.offset--
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.offset < len(m.view.Projects)-1 {
				m.offset++
			}
			return m, nil
		}

		// Pass remaining keys to text input
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if q := m.input.Value(); q != m.facets.Query {
			m.facets = m.facets.SetQuery(q)
			m.offset = 0
			m.refresh()
		}
		return m, cmd

	case tea.MouseMsg:
		switch {
		case msg.Button == tea.MouseButtonWheelUp:
			if m.offset > 0 {
				m.offset--
			}
		case msg.Button == tea.MouseButtonWheelDown:
			if m.offset < len(m.view.Projects)-1 {
				m.offset++
			}
		case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			var spans []span
			switch msg.Y {
			case rowBar:
				spans = barSpans(m.view.Slices, m.contentWidth())
			case rowLegend:
				spans = legendSpans(m.view.Slices)
			}
			if s, ok := spanAt(spans, msg.X); ok {
				m.toggle(s.Label)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m projectsModel) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m projectsModel) cardRows() int {
	if m.height <= 0 {
		return 20
	}
	return max(m.height-rowCards-1, linesPerCard)
}

// barSpans divides width among the slices by share, the last slice taking
// any rounding remainder. Every slice gets at least one column.
func barSpans(slices []search.Slice, width int) []span {
	total := 0
	for _, s := range slices {
		total += s.Value
	}
	if total == 0 || width < len(slices) {
		return nil
	}
	out := make([]span, len(slices))
	x := 0
	for i, s := range slices {
		w := int(math.Round(float64(s.Value) / float64(total) * float64(width)))
		w = max(w, 1)
		if rest := len(slices) - i - 1; x+w > width-rest {
			w = width - rest - x
		}
		if i == len(slices)-1 {
			w = width - x
		}
		out[i] = span{X0: x, X1: x + w, Label: s.Label, Color: render.SliceColor(i)}
		x += w
	}
	return out
}

// legendSpans lays out "■ label (n)" entries separated by two spaces.
func legendSpans(slices []search.Slice) []span {
	out := make([]span, len(slices))
	x := 0
	for i, s := range slices {
		w := runewidth.StringWidth(legendText(s))
		out[i] = span{X0: x, X1: x + w, Label: s.Label, Color: render.SliceColor(i)}
		x += w + 2
	}
	return out
}

func legendText(s search.Slice) string {
	return fmt.Sprintf("■ %s (%d)", s.Label, s.Value)
}

func spanAt(spans []span, x int) (span, bool) {
	for _, s := range spans {
		if x >= s.X0 && x < s.X1 {
			return s, true
		}
	}
	return span{}, false
}

// View renders the projects browser.
func (m projectsModel) View() string {
	if m.quitting || !m.ready {
		return ""
	}
	width := m.contentWidth()
	selected := m.view.Year

	// Year bar, the terminal stand-in for the pie
	var bar strings.Builder
	for _, s := range barSpans(m.view.Slices, width) {
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color))
		if selected != "" && s.Label != selected {
			st = st.Faint(true)
		}
		bar.WriteString(st.Render(strings.Repeat("█", s.X1-s.X0)))
	}

	var legend []string
	for i, s := range m.view.Slices {
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(render.SliceColor(i)))
		text := legendText(s)
		switch {
		case s.Label == selected:
			st = st.Bold(true).Underline(true)
		case selected != "":
			st = st.Faint(true)
		}
		if i == m.focus {
			st = st.Reverse(true)
		}
		legend = append(legend, st.Render(text))
	}

	rows := []string{
		m.input.View(),
		styleTitle.Render(fmt.Sprintf("%d Projects", len(m.view.Projects))),
		bar.String(),
		strings.Join(legend, "  "),
		"",
	}
	rows = append(rows, m.renderCards(width, m.cardRows())...)
	rows = append(rows, m.statusBar())
	return strings.Join(rows, "\n")
}

func (m projectsModel) renderCards(width, height int) []string {
	if len(m.view.Projects) == 0 {
		lines := []string{styleAxis.Render("No projects found.")}
		for len(lines) < height {
			lines = append(lines, "")
		}
		return lines
	}

	var lines []string
	for i, p := range m.view.Projects {
		if i < m.offset {
			continue
		}
		if len(lines)+linesPerCard > height {
			break
		}
		lines = append(lines, formatCard(p, width)...)
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

// formatCard formats a project as three lines: title and year, the
// description, and the link.
func formatCard(p parse.Project, width int) []string {
	title := runewidth.Truncate(p.Title, max(width-12, 1), "…")
	line1 := styleCardTitle.Render(title)
	if p.Year != "" {
		line1 += styleAxis.Render("  c. " + string(p.Year))
	}

	desc := strings.ReplaceAll(p.Description, "\n", " ")
	desc = runewidth.Truncate(desc, max(width-2, 1), "…")
	line2 := "  " + styleCardBody.Render(desc)

	line3 := ""
	if p.URL != "" {
		line3 = "  " + lipgloss.NewStyle().Foreground(colorPrimary).Render(p.URL)
	}
	return []string{line1, line2, line3}
}

func (m projectsModel) statusBar() string {
	parts := []string{
		fmt.Sprintf("%d/%d shown", len(m.view.Projects), len(m.all)),
		"tab/S-tab year",
		"enter toggle",
		"click bar/legend",
		"up/dn scroll",
		"esc quit",
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

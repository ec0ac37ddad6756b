package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/hsflores7/folio/internal/brush"
	"github.com/hsflores7/folio/internal/plot"
)

// cellPos is a terminal cell inside the canvas.
type cellPos struct {
	Col, Row int
}

// geometry maps between canvas cells and chart pixels.
type geometry struct {
	area       plot.Area
	cols, rows int
}

func (g geometry) cellW() float64 { return g.area.Width() / float64(g.cols) }
func (g geometry) cellH() float64 { return g.area.Height() / float64(g.rows) }

// center returns the chart pixel at the middle of a cell.
func (g geometry) center(c cellPos) (x, y float64) {
	return g.area.Left + (float64(c.Col)+0.5)*g.cellW(),
		g.area.Top + (float64(c.Row)+0.5)*g.cellH()
}

// cell returns the cell containing a chart pixel, clamped to the canvas.
func (g geometry) cell(x, y float64) cellPos {
	c := int((x - g.area.Left) / g.cellW())
	r := int((y - g.area.Top) / g.cellH())
	return cellPos{Col: max(0, min(c, g.cols-1)), Row: max(0, min(r, g.rows-1))}
}

func (g geometry) contains(c cellPos) bool {
	return c.Col >= 0 && c.Col < g.cols && c.Row >= 0 && c.Row < g.rows
}

// span is the chart region covering two drag corners cell-inclusively.
func (g geometry) span(a, b cellPos) brush.Region {
	c0, c1 := min(a.Col, b.Col), max(a.Col, b.Col)
	r0, r1 := min(a.Row, b.Row), max(a.Row, b.Row)
	return brush.Region{
		X0: g.area.Left + float64(c0)*g.cellW(),
		Y0: g.area.Top + float64(r0)*g.cellH(),
		X1: g.area.Left + float64(c1+1)*g.cellW(),
		Y1: g.area.Top + float64(r1+1)*g.cellH(),
	}
}

// slop widens hit testing to half a cell so small dots stay clickable.
func (g geometry) slop() float64 {
	return max(g.cellW(), g.cellH()) / 2
}

type styleID int

const (
	stPlain styleID = iota
	stNight
	stDay
	stSelected
	stFocus
	stAxis
	stTooltip
	numStyles
)

var (
	palette = [numStyles]lipgloss.Style{
		stPlain:    lipgloss.NewStyle(),
		stNight:    styleNight,
		stDay:      styleDay,
		stSelected: styleSelected,
		stFocus:    styleFocus,
		stAxis:     styleAxis,
		stTooltip:  styleTooltip,
	}
	brushedPalette [numStyles]lipgloss.Style
)

func init() {
	for i, st := range palette {
		brushedPalette[i] = st.Background(colorBrush)
	}
}

type cell struct {
	r       rune
	style   styleID
	brushed bool
	cont    bool // right half of a wide rune
}

// grid is a fixed-size character canvas.
type grid struct {
	w, h  int
	cells []cell
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, cells: make([]cell, w*h)}
	for i := range g.cells {
		g.cells[i].r = ' '
	}
	return g
}

func (g *grid) at(x, y int) *cell {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return nil
	}
	return &g.cells[y*g.w+x]
}

// set writes a single-width rune. Wide runes it partially overwrites are
// blanked so rows keep their width.
func (g *grid) set(x, y int, r rune, st styleID) {
	c := g.at(x, y)
	if c == nil {
		return
	}
	if c.cont {
		if left := g.at(x-1, y); left != nil {
			left.r = ' '
		}
	}
	c.r, c.style, c.cont = r, st, false
	if next := g.at(x+1, y); next != nil && next.cont {
		next.r, next.cont = ' ', false
	}
}

// text writes s from (x, y), clipping at the right edge. It returns the
// number of columns written.
func (g *grid) text(x, y int, s string, st styleID) int {
	start := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > g.w {
			break
		}
		g.set(x, y, r, st)
		if w == 2 {
			if c := g.at(x+1, y); c != nil {
				c.r, c.style, c.cont = 0, st, true
			}
		}
		x += w
	}
	return x - start
}

func (g *grid) shade(x, y int) {
	if c := g.at(x, y); c != nil {
		c.brushed = true
	}
}

// lines renders each row, grouping runs of equally styled cells.
func (g *grid) lines() []string {
	out := make([]string, g.h)
	for y := 0; y < g.h; y++ {
		var b, run strings.Builder
		row := g.cells[y*g.w : (y+1)*g.w]
		flush := func(c cell) {
			if run.Len() == 0 {
				return
			}
			switch {
			case c.brushed:
				b.WriteString(brushedPalette[c.style].Render(run.String()))
			case c.style == stPlain:
				b.WriteString(run.String())
			default:
				b.WriteString(palette[c.style].Render(run.String()))
			}
			run.Reset()
		}
		for i, c := range row {
			if i > 0 && (c.style != row[i-1].style || c.brushed != row[i-1].brushed) {
				flush(row[i-1])
			}
			if !c.cont {
				run.WriteRune(c.r)
			}
		}
		if len(row) > 0 {
			flush(row[len(row)-1])
		}
		out[y] = b.String()
	}
	return out
}

// plain returns the grid's characters without styling.
func (g *grid) plain() []string {
	out := make([]string, g.h)
	for y := 0; y < g.h; y++ {
		var b strings.Builder
		for _, c := range g.cells[y*g.w : (y+1)*g.w] {
			if !c.cont {
				b.WriteRune(c.r)
			}
		}
		out[y] = b.String()
	}
	return out
}

// glyph picks a dot size from the point's radius within the plot's range.
func glyph(r float64, o plot.Options) rune {
	span := o.RMax - o.RMin
	if span <= 0 {
		return '•'
	}
	t := (r - o.RMin) / span
	switch {
	case t < 1.0/3:
		return '·'
	case t < 2.0/3:
		return '•'
	default:
		return '●'
	}
}

// Package plot lays out the commit scatterplot: scales, axes and one point
// per commit, all in chart-pixel coordinates.
package plot

import (
	"fmt"
	"sort"
	"time"

	"github.com/hsflores7/folio/internal/commits"
)

// Margin is the space around the plotting area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Area is the usable plotting rectangle in chart pixels.
type Area struct {
	Top, Right, Bottom, Left float64
}

func (a Area) Width() float64  { return a.Right - a.Left }
func (a Area) Height() float64 { return a.Bottom - a.Top }

type Options struct {
	Width, Height float64
	Margin        Margin

	// Hour-of-day domain of the y axis.
	YMin, YMax float64

	// Pixel radius range for the smallest and largest commit.
	RMin, RMax float64

	// Local hours strictly before NightBefore or after NightAfter count
	// as night.
	NightBefore, NightAfter int
}

func DefaultOptions() Options {
	return Options{
		Width:       1000,
		Height:      600,
		Margin:      Margin{Top: 10, Right: 10, Bottom: 30, Left: 50},
		YMin:        0,
		YMax:        24,
		RMin:        6,
		RMax:        20,
		NightBefore: 6,
		NightAfter:  18,
	}
}

// DayHoursOnly narrows the y axis to 8 AM - midnight.
func (o Options) DayHoursOnly() Options {
	o.YMin = 8
	return o
}

// Point is a plotted commit.
type Point struct {
	Commit commits.CommitSummary
	CX, CY float64
	R      float64
	Night  bool
}

// Tick is an axis tick at pixel position Pos.
type Tick struct {
	Pos   float64
	Label string
}

type Plot struct {
	Options Options
	Area    Area
	X       TimeScale
	Y       LinearScale
	R       SqrtScale

	// Points are ordered largest first so that smaller points are drawn
	// on top.
	Points []Point
	XTicks []Tick
	YTicks []Tick
}

// Empty reports whether there is nothing to draw.
func (p Plot) Empty() bool { return len(p.Points) == 0 }

// Build lays out commits. Commits without a timestamp cannot be placed on
// the time axis and are left out.
func Build(list []commits.CommitSummary, o Options) Plot {
	area := Area{
		Top:    o.Margin.Top,
		Right:  o.Width - o.Margin.Right,
		Bottom: o.Height - o.Margin.Bottom,
		Left:   o.Margin.Left,
	}
	p := Plot{
		Options: o,
		Area:    area,
		Y:       LinearScale{D0: o.YMin, D1: o.YMax, R0: area.Bottom, R1: area.Top},
	}
	p.YTicks = hourTicks(p.Y)

	var dated []commits.CommitSummary
	for _, c := range list {
		if c.Datetime != nil {
			dated = append(dated, c)
		}
	}
	if len(dated) == 0 {
		return p
	}

	minT, maxT := *dated[0].Datetime, *dated[0].Datetime
	minL, maxL := dated[0].TotalLines, dated[0].TotalLines
	for _, c := range dated[1:] {
		if c.Datetime.Before(minT) {
			minT = *c.Datetime
		}
		if c.Datetime.After(maxT) {
			maxT = *c.Datetime
		}
		minL = min(minL, c.TotalLines)
		maxL = max(maxL, c.TotalLines)
	}

	p.X = NewTimeScale(minT, maxT, area.Left, area.Right).Nice()
	p.R = NewSqrtScale(float64(minL), float64(maxL), o.RMin, o.RMax)

	for _, t := range p.X.Ticks() {
		p.XTicks = append(p.XTicks, Tick{Pos: p.X.Map(t), Label: p.X.TickLabel(t)})
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].TotalLines > dated[j].TotalLines
	})

	p.Points = make([]Point, len(dated))
	for i, c := range dated {
		p.Points[i] = Point{
			Commit: c,
			CX:     p.X.Map(*c.Datetime),
			CY:     p.Y.Map(c.HourFrac),
			R:      p.R.Map(float64(c.TotalLines)),
			Night:  IsNight(*c.Datetime, o.NightBefore, o.NightAfter),
		}
	}
	return p
}

// IsNight reports whether t's local hour falls in the night band.
func IsNight(t time.Time, before, after int) bool {
	h := t.Hour()
	return h < before || h > after
}

// HitTest returns the index of the topmost point under (x, y), allowing slop
// extra pixels around each circle, or -1.
func (p Plot) HitTest(x, y, slop float64) int {
	for i := len(p.Points) - 1; i >= 0; i-- {
		pt := p.Points[i]
		dx, dy := x-pt.CX, y-pt.CY
		r := pt.R + slop
		if dx*dx+dy*dy <= r*r {
			return i
		}
	}
	return -1
}

// HourLabel formats an hour-of-day value in 12-hour form, e.g. "2 PM".
func HourLabel(h int) string {
	hour := h % 24
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d %s", hour, period)
}

func hourTicks(y LinearScale) []Tick {
	var ticks []Tick
	for h := int(y.D0); h <= int(y.D1); h += 2 {
		ticks = append(ticks, Tick{Pos: y.Map(float64(h)), Label: HourLabel(h)})
	}
	return ticks
}

// Package explore holds the commit explorer's application state and the pure
// update function that drives it. Front ends feed it events and redraw the
// views it names.
package explore

import (
	"time"

	"github.com/hsflores7/folio/internal/breakdown"
	"github.com/hsflores7/folio/internal/brush"
	"github.com/hsflores7/folio/internal/commits"
	"github.com/hsflores7/folio/internal/parse"
	"github.com/hsflores7/folio/internal/plot"
	"github.com/hsflores7/folio/internal/tooltip"
)

// View names a panel that needs redrawing.
type View int

const (
	ViewStats View = iota
	ViewScatter
	ViewCount
	ViewBreakdown
	ViewTooltip
)

// Timer asks the front end to deliver CountTimerFired{Token} after Delay.
type Timer struct {
	Token uint64
	Delay time.Duration
}

// Result is what an update asks of the front end.
type Result struct {
	Views []View
	Timer *Timer
}

// Has reports whether v is among the views to redraw.
func (r Result) Has(v View) bool {
	for _, x := range r.Views {
		if x == v {
			return true
		}
	}
	return false
}

// Event is an input to Update.
type Event interface{ isEvent() }

// Loaded replaces the dataset wholesale.
type Loaded struct{ Records []parse.LineRecord }

// BrushChanged carries the new brush region; nil clears it.
type BrushChanged struct{ Region *brush.Region }

// CountTimerFired is delivered when a debounce timer elapses.
type CountTimerFired struct{ Token uint64 }

// Pointer is a hover/click event for the tooltip.
type Pointer struct{ tooltip.Event }

func (Loaded) isEvent()          {}
func (BrushChanged) isEvent()    {}
func (CountTimerFired) isEvent() {}
func (Pointer) isEvent()         {}

type State struct {
	Options plot.Options

	Records []parse.LineRecord
	Commits []commits.CommitSummary
	Stats   commits.Stats
	Plot    plot.Plot

	Brush   brush.Controller
	Count   brush.Debouncer[int]
	Tooltip tooltip.Machine

	// Published panel contents.
	CountLabel string
	Breakdown  []breakdown.Entry
}

func New(o plot.Options) State {
	s := State{Options: o}
	s, _ = Update(s, Loaded{})
	return s
}

// Update applies ev to s. It never mutates s in place.
func Update(s State, ev Event) (State, Result) {
	switch ev := ev.(type) {
	case Loaded:
		return load(s, ev.Records), Result{Views: []View{ViewStats, ViewScatter, ViewCount, ViewBreakdown, ViewTooltip}}

	case BrushChanged:
		next, ch := s.Brush.Apply(ev.Region)
		if !ch.Changed {
			return s, Result{}
		}
		s.Brush = next
		if ch.Cleared {
			s.Count = s.Count.Cancel()
			s.CountLabel = brush.CountLabel(0)
			s.Breakdown = nil
			return s, Result{Views: []View{ViewScatter, ViewCount, ViewBreakdown}}
		}
		s.Breakdown = breakdown.Compute(s.SelectedCommits())
		var token uint64
		s.Count, token = s.Count.Schedule(len(ch.Selected))
		return s, Result{
			Views: []View{ViewScatter, ViewBreakdown},
			Timer: &Timer{Token: token, Delay: brush.DebounceDelay},
		}

	case CountTimerFired:
		var n int
		var ok bool
		s.Count, n, ok = s.Count.Fire(ev.Token)
		if !ok {
			return s, Result{}
		}
		s.CountLabel = brush.CountLabel(n)
		return s, Result{Views: []View{ViewCount}}

	case Pointer:
		next, changed := s.Tooltip.Handle(ev.Event)
		if !changed {
			return s, Result{}
		}
		s.Tooltip = next
		return s, Result{Views: []View{ViewTooltip}}
	}
	return s, Result{}
}

func load(s State, records []parse.LineRecord) State {
	s.Records = records
	s.Commits = commits.Aggregate(records)
	s.Stats = commits.Summarize(records, s.Commits)
	s.Plot = plot.Build(s.Commits, s.Options)
	s.Brush = brush.NewController(Positions(s.Plot))
	s.Count = s.Count.Cancel()
	s.Tooltip = tooltip.New()
	s.CountLabel = brush.CountLabel(0)
	s.Breakdown = nil
	return s
}

// Positions returns the pixel centre of every plotted point.
func Positions(p plot.Plot) []brush.Pos {
	out := make([]brush.Pos, len(p.Points))
	for i, pt := range p.Points {
		out[i] = brush.Pos{X: pt.CX, Y: pt.CY}
	}
	return out
}

// SelectedCommits returns the commits inside the brush, in plot order.
func (s State) SelectedCommits() []commits.CommitSummary {
	sel := s.Brush.Selected()
	out := make([]commits.CommitSummary, 0, len(sel))
	for _, i := range sel {
		out = append(out, s.Plot.Points[i].Commit)
	}
	return out
}

// TooltipCommit returns the commit the tooltip shows, if any.
func (s State) TooltipCommit() (commits.CommitSummary, bool) {
	if !s.Tooltip.Visible() || s.Tooltip.Target >= len(s.Plot.Points) {
		return commits.CommitSummary{}, false
	}
	return s.Plot.Points[s.Tooltip.Target].Commit, true
}

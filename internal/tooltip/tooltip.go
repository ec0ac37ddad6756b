// Package tooltip implements the commit tooltip's hover/pin state machine.
package tooltip

// State is the tooltip's visibility state.
type State int

const (
	Hidden State = iota
	Hovering
	Pinned
)

func (s State) String() string {
	switch s {
	case Hovering:
		return "hovering"
	case Pinned:
		return "pinned"
	default:
		return "hidden"
	}
}

// EventKind enumerates pointer events the tooltip reacts to.
type EventKind int

const (
	Enter EventKind = iota
	Move
	Leave
	Click
	OutsideClick
)

// Vec is a position or size in the caller's coordinate system.
type Vec struct {
	X, Y int
}

// Event is a pointer event. Target is the point index for Enter and Click.
type Event struct {
	Kind    EventKind
	Target  int
	Pointer Vec
}

type action int

const (
	actNone action = iota
	actShow
	actMove
	actClear
)

type transition struct {
	to  State
	act action
}

type key struct {
	from State
	on   EventKind
}

// Pairs absent from the table leave the machine unchanged.
var transitions = map[key]transition{
	{Hidden, Enter}:        {Hovering, actShow},
	{Hidden, Click}:        {Pinned, actShow},
	{Hovering, Enter}:      {Hovering, actShow},
	{Hovering, Move}:       {Hovering, actMove},
	{Hovering, Leave}:      {Hidden, actClear},
	{Hovering, Click}:      {Pinned, actShow},
	{Pinned, Click}:        {Pinned, actShow},
	{Pinned, OutsideClick}: {Hidden, actClear},
}

// Machine is the tooltip state; New returns a hidden one.
type Machine struct {
	State   State
	Target  int // point index; -1 when hidden
	Pointer Vec
}

func New() Machine {
	return Machine{Target: -1}
}

// Visible reports whether a tooltip should be drawn.
func (m Machine) Visible() bool {
	return m.State != Hidden && m.Target >= 0
}

// Handle applies ev and returns the next machine and whether anything
// visible changed.
func (m Machine) Handle(ev Event) (Machine, bool) {
	tr, ok := transitions[key{m.State, ev.Kind}]
	if !ok {
		return m, false
	}
	next := m
	next.State = tr.to
	switch tr.act {
	case actShow:
		next.Target = ev.Target
		next.Pointer = ev.Pointer
	case actMove:
		next.Pointer = ev.Pointer
	case actClear:
		next.Target = -1
		next.Pointer = Vec{}
	}
	return next, next != m
}

// Offset is the gap between the pointer and the tooltip box.
const Offset = 1

// Place positions a box of the given size near pointer inside viewport. It
// prefers below-right of the pointer, flips left or up when the box would
// overflow, and finally clamps to the viewport.
func Place(pointer, size, viewport Vec) Vec {
	x := pointer.X + Offset
	if x+size.X > viewport.X {
		x = pointer.X - Offset - size.X
	}
	y := pointer.Y + Offset
	if y+size.Y > viewport.Y {
		y = pointer.Y - Offset - size.Y
	}
	x = clamp(x, 0, viewport.X-size.X)
	y = clamp(y, 0, viewport.Y-size.Y)
	return Vec{X: x, Y: y}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}

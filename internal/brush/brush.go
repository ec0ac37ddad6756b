// Package brush tracks the rectangular selection drawn over the scatterplot
// and decides which plotted commits it covers.
package brush

import "fmt"

// Pos is a position in chart pixels.
type Pos struct {
	X, Y float64
}

// Region is an axis-aligned rectangle in chart pixels with X0 <= X1 and
// Y0 <= Y1.
type Region struct {
	X0, Y0, X1, Y1 float64
}

// NewRegion returns the rectangle spanned by two drag corners.
func NewRegion(a, b Pos) Region {
	return Region{
		X0: min(a.X, b.X),
		Y0: min(a.Y, b.Y),
		X1: max(a.X, b.X),
		Y1: max(a.Y, b.Y),
	}
}

// Contains is inclusive on all four sides.
func (r Region) Contains(p Pos) bool {
	return p.X >= r.X0 && p.X <= r.X1 && p.Y >= r.Y0 && p.Y <= r.Y1
}

// Empty reports whether the region has no area.
func (r Region) Empty() bool {
	return r.X0 == r.X1 || r.Y0 == r.Y1
}

// Equal compares two optional regions by value.
func Equal(a, b *Region) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Select returns the indices of positions inside r. A nil region selects
// nothing.
func Select(r *Region, positions []Pos) []int {
	if r == nil {
		return nil
	}
	var out []int
	for i, p := range positions {
		if r.Contains(p) {
			out = append(out, i)
		}
	}
	return out
}

// Change describes the effect of applying a new region.
type Change struct {
	Changed  bool
	Cleared  bool
	Selected []int
}

// Controller holds the current region for a fixed set of plotted positions.
type Controller struct {
	positions []Pos
	region    *Region
	selected  []int
}

func NewController(positions []Pos) Controller {
	return Controller{positions: positions}
}

func (c Controller) Region() *Region { return c.region }
func (c Controller) Selected() []int { return c.selected }

// IsSelected reports whether position i is inside the current region.
func (c Controller) IsSelected(i int) bool {
	if c.region == nil || i < 0 || i >= len(c.positions) {
		return false
	}
	return c.region.Contains(c.positions[i])
}

// Apply stores r and recomputes the selection. A region equal to the stored
// one is a no-op so duplicate drag events cost nothing downstream. Empty
// regions are treated as a clear.
func (c Controller) Apply(r *Region) (Controller, Change) {
	if r != nil && r.Empty() {
		r = nil
	}
	if Equal(c.region, r) {
		return c, Change{Selected: c.selected}
	}
	next := c
	if r != nil {
		cp := *r
		next.region = &cp
	} else {
		next.region = nil
	}
	next.selected = Select(next.region, c.positions)
	return next, Change{
		Changed:  true,
		Cleared:  next.region == nil,
		Selected: next.selected,
	}
}

// CountLabel is the text of the selection counter.
func CountLabel(n int) string {
	switch n {
	case 0:
		return "No commits selected"
	case 1:
		return "1 commit selected"
	default:
		return fmt.Sprintf("%d commits selected", n)
	}
}

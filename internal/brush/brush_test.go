package brush_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsflores7/folio/internal/brush"
)

var positions = []brush.Pos{
	{X: 10, Y: 10},
	{X: 50, Y: 50},
	{X: 100, Y: 20},
}

func TestNewRegionNormalizes(t *testing.T) {
	t.Parallel()

	r := brush.NewRegion(brush.Pos{X: 60, Y: 5}, brush.Pos{X: 0, Y: 55})
	require.Equal(t, brush.Region{X0: 0, Y0: 5, X1: 60, Y1: 55}, r)
}

func TestContainsInclusive(t *testing.T) {
	t.Parallel()

	r := brush.Region{X0: 10, Y0: 10, X1: 50, Y1: 50}
	require.True(t, r.Contains(brush.Pos{X: 10, Y: 10}))
	require.True(t, r.Contains(brush.Pos{X: 50, Y: 50}))
	require.True(t, r.Contains(brush.Pos{X: 10, Y: 50}))
	require.False(t, r.Contains(brush.Pos{X: 50.01, Y: 30}))
}

func TestApplySelects(t *testing.T) {
	t.Parallel()

	c := brush.NewController(positions)
	r := brush.Region{X0: 0, Y0: 0, X1: 60, Y1: 60}
	c, ch := c.Apply(&r)
	require.True(t, ch.Changed)
	require.False(t, ch.Cleared)
	require.Equal(t, []int{0, 1}, ch.Selected)
	require.True(t, c.IsSelected(1))
	require.False(t, c.IsSelected(2))
}

func TestApplySameRegionIsNoop(t *testing.T) {
	t.Parallel()

	c := brush.NewController(positions)
	r := brush.Region{X0: 0, Y0: 0, X1: 60, Y1: 60}
	c, _ = c.Apply(&r)

	same := r
	_, ch := c.Apply(&same)
	require.False(t, ch.Changed)
	require.Equal(t, []int{0, 1}, ch.Selected)
}

func TestApplyClear(t *testing.T) {
	t.Parallel()

	c := brush.NewController(positions)
	r := brush.Region{X0: 0, Y0: 0, X1: 200, Y1: 200}
	c, _ = c.Apply(&r)

	c, ch := c.Apply(nil)
	require.True(t, ch.Changed)
	require.True(t, ch.Cleared)
	require.Empty(t, ch.Selected)
	require.Nil(t, c.Region())
	for i := range positions {
		require.False(t, c.IsSelected(i))
	}

	_, ch = c.Apply(nil)
	require.False(t, ch.Changed, "clearing twice is a no-op")
}

func TestApplyEmptyAreaClears(t *testing.T) {
	t.Parallel()

	c := brush.NewController(positions)
	r := brush.Region{X0: 0, Y0: 0, X1: 200, Y1: 200}
	c, _ = c.Apply(&r)

	flat := brush.Region{X0: 5, Y0: 5, X1: 5, Y1: 90}
	c, ch := c.Apply(&flat)
	require.True(t, ch.Cleared)
	require.Nil(t, c.Region())
}

func TestSelectionIsPure(t *testing.T) {
	t.Parallel()

	r := brush.Region{X0: 40, Y0: 0, X1: 120, Y1: 60}
	c := brush.NewController(positions)
	c, first := c.Apply(&r)
	c, _ = c.Apply(nil)
	_, again := c.Apply(&r)
	require.Equal(t, first.Selected, again.Selected)
	require.Equal(t, brush.Select(&r, positions), again.Selected)
}

func TestCountLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "No commits selected", brush.CountLabel(0))
	require.Equal(t, "1 commit selected", brush.CountLabel(1))
	require.Equal(t, "7 commits selected", brush.CountLabel(7))
}

func TestDebouncerLatestWins(t *testing.T) {
	t.Parallel()

	var d brush.Debouncer[int]
	var tokens []uint64
	for i := 1; i <= 5; i++ {
		var tok uint64
		d, tok = d.Schedule(i)
		tokens = append(tokens, tok)
	}
	require.Equal(t, brush.Pending, d.State)

	var fired []int
	for _, tok := range tokens {
		var v int
		var ok bool
		d, v, ok = d.Fire(tok)
		if ok {
			fired = append(fired, v)
		}
	}
	require.Equal(t, []int{5}, fired)
	require.Equal(t, brush.Idle, d.State)
}

func TestDebouncerCancel(t *testing.T) {
	t.Parallel()

	var d brush.Debouncer[string]
	d, tok := d.Schedule("x")
	d = d.Cancel()
	_, _, ok := d.Fire(tok)
	require.False(t, ok)
	require.Equal(t, brush.Idle, d.State)
}

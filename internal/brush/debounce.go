package brush

import "time"

// DebounceDelay is the minimum gap between published selection counts.
const DebounceDelay = 100 * time.Millisecond

// DebounceState is the debouncer's named state.
type DebounceState int

const (
	Idle DebounceState = iota
	Pending
)

// Debouncer coalesces bursts of values. Every Schedule supersedes the one
// before it; only the token of the latest Schedule fires. The caller owns the
// timer: it waits DebounceDelay after each Schedule and then calls Fire with
// the token it was given.
type Debouncer[T any] struct {
	State DebounceState
	seq   uint64
	value T
}

// Schedule records v as the pending value and returns its token.
func (d Debouncer[T]) Schedule(v T) (Debouncer[T], uint64) {
	d.seq++
	d.State = Pending
	d.value = v
	return d, d.seq
}

// Fire delivers the pending value if token is the latest one.
func (d Debouncer[T]) Fire(token uint64) (Debouncer[T], T, bool) {
	var zero T
	if d.State != Pending || token != d.seq {
		return d, zero, false
	}
	v := d.value
	d.State = Idle
	d.value = zero
	return d, v, true
}

// Cancel drops any pending value. Tokens already handed out become stale.
func (d Debouncer[T]) Cancel() Debouncer[T] {
	var zero T
	d.seq++
	d.State = Idle
	d.value = zero
	return d
}

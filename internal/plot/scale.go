package plot

import (
	"math"
	"time"
)

// LinearScale maps a continuous domain onto a pixel range.
type LinearScale struct {
	D0, D1 float64
	R0, R1 float64
}

// Map returns the range value for v. A degenerate domain maps to the middle
// of the range.
func (s LinearScale) Map(v float64) float64 {
	if s.D1 == s.D0 {
		return (s.R0 + s.R1) / 2
	}
	return s.R0 + (v-s.D0)/(s.D1-s.D0)*(s.R1-s.R0)
}

// Invert maps a range value back onto the domain.
func (s LinearScale) Invert(r float64) float64 {
	if s.R1 == s.R0 {
		return s.D0
	}
	return s.D0 + (r-s.R0)/(s.R1-s.R0)*(s.D1-s.D0)
}

// SqrtScale maps v through a square root so that circle area, not radius,
// is proportional to v.
type SqrtScale struct {
	lin LinearScale
}

func NewSqrtScale(d0, d1, r0, r1 float64) SqrtScale {
	return SqrtScale{lin: LinearScale{
		D0: math.Sqrt(math.Max(d0, 0)),
		D1: math.Sqrt(math.Max(d1, 0)),
		R0: r0,
		R1: r1,
	}}
}

func (s SqrtScale) Map(v float64) float64 {
	return s.lin.Map(math.Sqrt(math.Max(v, 0)))
}

// TimeScale maps instants onto a pixel range.
type TimeScale struct {
	Min, Max time.Time
	R0, R1   float64

	step *interval
}

func NewTimeScale(min, max time.Time, r0, r1 float64) TimeScale {
	return TimeScale{Min: min, Max: max, R0: r0, R1: r1}
}

func (s TimeScale) Map(t time.Time) float64 {
	lin := LinearScale{
		D0: float64(s.Min.UnixMilli()),
		D1: float64(s.Max.UnixMilli()),
		R0: s.R0,
		R1: s.R1,
	}
	return lin.Map(float64(t.UnixMilli()))
}

// Nice extends the domain outward to whole tick intervals.
func (s TimeScale) Nice() TimeScale {
	iv := chooseInterval(s.Max.Sub(s.Min))
	s.step = &iv
	s.Min = iv.floor(s.Min)
	s.Max = iv.ceil(s.Max)
	return s
}

// Ticks returns the tick instants within the domain.
func (s TimeScale) Ticks() []time.Time {
	iv := chooseInterval(s.Max.Sub(s.Min))
	if s.step != nil {
		iv = *s.step
	}
	var ticks []time.Time
	for t := iv.ceil(s.Min); !t.After(s.Max); t = iv.offset(t, 1) {
		ticks = append(ticks, t)
		if len(ticks) > 1000 {
			break
		}
	}
	return ticks
}

// TickLabel formats t at the granularity of the scale's tick interval.
func (s TimeScale) TickLabel(t time.Time) string {
	iv := chooseInterval(s.Max.Sub(s.Min))
	if s.step != nil {
		iv = *s.step
	}
	return t.Format(iv.layout)
}

type interval struct {
	dur    time.Duration // sub-day steps
	days   int
	months int
	layout string
}

const targetTicks = 10

var intervals = []interval{
	{dur: time.Minute, layout: "3:04 PM"},
	{dur: 5 * time.Minute, layout: "3:04 PM"},
	{dur: 15 * time.Minute, layout: "3:04 PM"},
	{dur: 30 * time.Minute, layout: "3:04 PM"},
	{dur: time.Hour, layout: "3 PM"},
	{dur: 3 * time.Hour, layout: "3 PM"},
	{dur: 6 * time.Hour, layout: "3 PM"},
	{dur: 12 * time.Hour, layout: "3 PM"},
	{days: 1, layout: "Jan 02"},
	{days: 2, layout: "Jan 02"},
	{days: 7, layout: "Jan 02"},
	{months: 1, layout: "January"},
	{months: 3, layout: "January"},
	{months: 12, layout: "2006"},
}

func (iv interval) approx() time.Duration {
	switch {
	case iv.months > 0:
		return time.Duration(iv.months) * 30 * 24 * time.Hour
	case iv.days > 0:
		return time.Duration(iv.days) * 24 * time.Hour
	default:
		return iv.dur
	}
}

func chooseInterval(span time.Duration) interval {
	for _, iv := range intervals {
		if span/iv.approx() <= targetTicks {
			return iv
		}
	}
	return intervals[len(intervals)-1]
}

func (iv interval) floor(t time.Time) time.Time {
	loc := t.Location()
	y, m, d := t.Date()
	switch {
	case iv.months > 0:
		mi := (int(m) - 1) / iv.months * iv.months
		return time.Date(y, time.Month(mi+1), 1, 0, 0, 0, 0, loc)
	case iv.days == 7:
		midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)
		return midnight.AddDate(0, 0, -int(midnight.Weekday()))
	case iv.days > 0:
		day := (d-1)/iv.days*iv.days + 1
		return time.Date(y, m, day, 0, 0, 0, 0, loc)
	default:
		midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)
		elapsed := t.Sub(midnight)
		return midnight.Add(elapsed - elapsed%iv.dur)
	}
}

func (iv interval) ceil(t time.Time) time.Time {
	f := iv.floor(t)
	if f.Equal(t) {
		return t
	}
	return iv.offset(f, 1)
}

func (iv interval) offset(t time.Time, n int) time.Time {
	switch {
	case iv.months > 0:
		return t.AddDate(0, iv.months*n, 0)
	case iv.days > 0:
		return t.AddDate(0, 0, iv.days*n)
	default:
		return t.Add(time.Duration(n) * iv.dur)
	}
}

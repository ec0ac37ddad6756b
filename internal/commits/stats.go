package commits

import (
	"fmt"

	"github.com/hsflores7/folio/internal/parse"
)

// Stats are corpus-wide aggregates shown above the scatterplot.
type Stats struct {
	TotalLines    int
	TotalCommits  int
	LongestFile   int
	MeanLength    float64
	MaxDepth      int
	BusiestPeriod string // "" when no row has a datetime
}

// Day periods, in bucket order.
const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
	PeriodEvening   = "evening"
	PeriodNight     = "night"
)

// DayPeriod buckets an hour (0-23) into a named part of the day.
func DayPeriod(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return PeriodMorning
	case hour >= 12 && hour < 18:
		return PeriodAfternoon
	case hour >= 18 && hour < 21:
		return PeriodEvening
	default:
		return PeriodNight
	}
}

func Summarize(records []parse.LineRecord, commits []CommitSummary) Stats {
	s := Stats{
		TotalLines:   len(records),
		TotalCommits: len(commits),
	}
	if len(records) == 0 {
		return s
	}

	var sum int
	periods := make(map[string]int)
	var order []string
	for _, r := range records {
		sum += r.Length
		s.LongestFile = max(s.LongestFile, r.Length)
		s.MaxDepth = max(s.MaxDepth, r.Depth)
		if r.Datetime == nil {
			continue
		}
		p := DayPeriod(r.Datetime.Hour())
		if periods[p] == 0 {
			order = append(order, p)
		}
		periods[p]++
	}
	s.MeanLength = float64(sum) / float64(len(records))

	best := 0
	for _, p := range order {
		if periods[p] > best {
			best = periods[p]
			s.BusiestPeriod = p
		}
	}
	return s
}

// MeanLabel formats the mean file length to two decimals, or N/A.
func (s Stats) MeanLabel() string {
	if s.TotalLines == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", s.MeanLength)
}

// PeriodLabel returns the busiest period or N/A.
func (s Stats) PeriodLabel() string {
	if s.BusiestPeriod == "" {
		return "N/A"
	}
	return s.BusiestPeriod
}

package commits_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hsflores7/folio/internal/commits"
	"github.com/hsflores7/folio/internal/parse"
)

func at(t *testing.T, s string) *time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return &v
}

func sampleRecords(t *testing.T) []parse.LineRecord {
	a := at(t, "2025-02-11T14:30:00-08:00")
	b := at(t, "2025-02-12T09:15:00-08:00")
	return []parse.LineRecord{
		{Commit: "a", Author: "hf", Datetime: a, Type: "js", Length: 10, Depth: 1},
		{Commit: "b", Author: "hf", Datetime: b, Type: "css", Length: 4, Depth: 0},
		{Commit: "a", Author: "hf", Datetime: a, Type: "js", Length: 10, Depth: 2},
		{Commit: "c", Author: "other", Type: "html", Length: 30, Depth: 3},
		{Commit: "a", Author: "hf", Datetime: a, Type: "js", Length: 10, Depth: 1},
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	records := sampleRecords(t)
	got := commits.Aggregate(records)
	require.Len(t, got, 3)

	require.Equal(t, "a", got[0].ID)
	require.Equal(t, "b", got[1].ID)
	require.Equal(t, "c", got[2].ID)

	require.Equal(t, 3, got[0].TotalLines)
	require.Len(t, got[0].Lines, 3)
	require.InDelta(t, 14.5, got[0].HourFrac, 1e-9)
	require.InDelta(t, 9.25, got[1].HourFrac, 1e-9)
	require.Zero(t, got[2].HourFrac, "nil datetime means hour unknown")
	require.Equal(t, "other", got[2].Author)
}

func TestAggregatePartitionInvariant(t *testing.T) {
	t.Parallel()

	records := sampleRecords(t)
	total := 0
	for _, c := range commits.Aggregate(records) {
		total += c.TotalLines
		require.Equal(t, c.TotalLines, len(c.Lines))
	}
	require.Equal(t, len(records), total)
}

func TestAggregateIdempotent(t *testing.T) {
	t.Parallel()

	records := sampleRecords(t)
	first := commits.Aggregate(records)
	second := commits.Aggregate(records)
	require.Equal(t, first, second)

	first[0].Lines[0].Type = "mutated"
	require.Equal(t, "js", records[0].Type, "aggregation must not alias the input")
}

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, commits.Aggregate(nil))
}

func TestViewAndURL(t *testing.T) {
	t.Parallel()

	c := commits.Aggregate(sampleRecords(t))[0]
	v := c.View()
	require.Equal(t, c.ID, v.ID)
	require.Equal(t, c.TotalLines, v.TotalLines)
	require.Equal(t, "https://github.com/u/r/commit/a", c.URL("https://github.com/u/r/commit/"))
	require.Empty(t, c.URL(""))
}

func TestFind(t *testing.T) {
	t.Parallel()

	list := []commits.CommitSummary{{ID: "abc123"}, {ID: "abd456"}, {ID: "ff00"}}

	c, ok := commits.Find(list, "ff")
	require.True(t, ok)
	require.Equal(t, "ff00", c.ID)

	_, ok = commits.Find(list, "ab")
	require.False(t, ok, "ambiguous prefix")

	c, ok = commits.Find(list, "abc123")
	require.True(t, ok)
	require.Equal(t, "abc123", c.ID)

	_, ok = commits.Find(list, "zz")
	require.False(t, ok)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	records := sampleRecords(t)
	s := commits.Summarize(records, commits.Aggregate(records))
	require.Equal(t, 5, s.TotalLines)
	require.Equal(t, 3, s.TotalCommits)
	require.Equal(t, 30, s.LongestFile)
	require.Equal(t, 3, s.MaxDepth)
	require.Equal(t, "12.80", s.MeanLabel())
	require.Equal(t, commits.PeriodAfternoon, s.PeriodLabel())
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	s := commits.Summarize(nil, nil)
	require.Equal(t, "N/A", s.MeanLabel())
	require.Equal(t, "N/A", s.PeriodLabel())
}

func TestDayPeriod(t *testing.T) {
	t.Parallel()

	require.Equal(t, commits.PeriodNight, commits.DayPeriod(3))
	require.Equal(t, commits.PeriodMorning, commits.DayPeriod(6))
	require.Equal(t, commits.PeriodAfternoon, commits.DayPeriod(12))
	require.Equal(t, commits.PeriodEvening, commits.DayPeriod(20))
	require.Equal(t, commits.PeriodNight, commits.DayPeriod(21))
}

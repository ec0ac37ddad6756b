package breakdown_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsflores7/folio/internal/breakdown"
	"github.com/hsflores7/folio/internal/commits"
	"github.com/hsflores7/folio/internal/parse"
)

func rows(commit string, types ...string) []parse.LineRecord {
	out := make([]parse.LineRecord, len(types))
	for i, t := range types {
		out[i] = parse.LineRecord{Commit: commit, Type: t, Line: i + 1}
	}
	return out
}

func TestComputeSingleType(t *testing.T) {
	t.Parallel()

	var records []parse.LineRecord
	records = append(records, rows("A", "js", "js", "js")...)
	records = append(records, rows("B", "css", "css")...)
	list := commits.Aggregate(records)

	got := breakdown.Compute(list[:1])
	require.Len(t, got, 1)
	require.Equal(t, "js", got[0].Type)
	require.Equal(t, 3, got[0].Count)
	require.Equal(t, "100.0%", got[0].Percent)
}

func TestComputeOrderAndPercent(t *testing.T) {
	t.Parallel()

	records := rows("A", "js", "css", "js", "html", "css", "js")
	got := breakdown.Compute(commits.Aggregate(records))
	require.Equal(t, []string{"js", "css", "html"}, []string{got[0].Type, got[1].Type, got[2].Type})
	require.Equal(t, "50.0%", got[0].Percent)
	require.Equal(t, "33.3%", got[1].Percent)
	require.Equal(t, "16.7%", got[2].Percent)
	require.Equal(t, 6, breakdown.Total(got))
}

func TestComputePercentSumsToHundred(t *testing.T) {
	t.Parallel()

	records := rows("A", "a", "b", "c", "a", "b", "a", "d")
	got := breakdown.Compute(commits.Aggregate(records))

	sum := 0.0
	for _, e := range got {
		v, err := strconv.ParseFloat(strings.TrimSuffix(e.Percent, "%"), 64)
		require.NoError(t, err)
		sum += v
	}
	require.InDelta(t, 100, sum, 0.05*float64(len(got)))
}

func TestComputeTiesByName(t *testing.T) {
	t.Parallel()

	got := breakdown.Compute(commits.Aggregate(rows("A", "ts", "go")))
	require.Equal(t, "go", got[0].Type)
	require.Equal(t, "ts", got[1].Type)
}

func TestComputeEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, breakdown.Compute(nil))
}

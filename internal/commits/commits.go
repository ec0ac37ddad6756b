// Package commits groups line-level log rows into per-commit summaries and
// derives corpus-wide statistics from them.
package commits

import (
	"strings"
	"time"

	"github.com/hsflores7/folio/internal/parse"
)

// CommitSummary describes one commit. Lines holds the rows that belong to the
// commit; it is only needed for the language breakdown, so list views use
// CommitView instead.
type CommitSummary struct {
	ID         string
	Author     string
	Date       *time.Time
	Time       string
	Timezone   string
	Datetime   *time.Time
	HourFrac   float64
	TotalLines int
	Lines      []parse.LineRecord
}

// CommitView is a CommitSummary without its line rows.
type CommitView struct {
	ID         string
	Author     string
	Datetime   *time.Time
	HourFrac   float64
	TotalLines int
}

func (c CommitSummary) View() CommitView {
	return CommitView{
		ID:         c.ID,
		Author:     c.Author,
		Datetime:   c.Datetime,
		HourFrac:   c.HourFrac,
		TotalLines: c.TotalLines,
	}
}

// URL returns the commit's page under base.
func (c CommitSummary) URL(base string) string {
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + c.ID
}

// Aggregate partitions records by commit id in order of first appearance.
// Header fields come from the first record of each group. It does not mutate
// records and returns a fresh slice on every call.
func Aggregate(records []parse.LineRecord) []CommitSummary {
	index := make(map[string]int)
	var out []CommitSummary

	for _, r := range records {
		i, ok := index[r.Commit]
		if !ok {
			i = len(out)
			index[r.Commit] = i
			out = append(out, CommitSummary{
				ID:       r.Commit,
				Author:   r.Author,
				Date:     r.Date,
				Time:     r.Time,
				Timezone: r.Timezone,
				Datetime: r.Datetime,
				HourFrac: hourFrac(r.Datetime),
			})
		}
		out[i].Lines = append(out[i].Lines, r)
		out[i].TotalLines++
	}
	return out
}

func hourFrac(t *time.Time) float64 {
	if t == nil {
		return 0
	}
	return float64(t.Hour()) + float64(t.Minute())/60
}

// Find returns the commit whose id equals id or starts with it when the
// prefix is unambiguous.
func Find(commits []CommitSummary, id string) (CommitSummary, bool) {
	var match *CommitSummary
	for i := range commits {
		if commits[i].ID == id {
			return commits[i], true
		}
		if id != "" && strings.HasPrefix(commits[i].ID, id) {
			if match != nil {
				return CommitSummary{}, false
			}
			match = &commits[i]
		}
	}
	if match == nil {
		return CommitSummary{}, false
	}
	return *match, true
}

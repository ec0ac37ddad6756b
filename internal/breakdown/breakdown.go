// Package breakdown counts the lines of selected commits by file type.
package breakdown

import (
	"fmt"
	"sort"

	"github.com/hsflores7/folio/internal/commits"
)

// Entry is one file type's share of the selected lines.
type Entry struct {
	Type    string
	Count   int
	Percent string // one decimal place, e.g. "66.7%"
	Share   float64
}

// Compute groups the lines of selected by type, largest first. Ties are
// ordered by type name so repeated renders are stable.
func Compute(selected []commits.CommitSummary) []Entry {
	counts := make(map[string]int)
	total := 0
	for _, c := range selected {
		for _, l := range c.Lines {
			counts[l.Type]++
			total++
		}
	}
	if total == 0 {
		return nil
	}

	entries := make([]Entry, 0, len(counts))
	for typ, n := range counts {
		share := float64(n) / float64(total)
		entries = append(entries, Entry{
			Type:    typ,
			Count:   n,
			Share:   share,
			Percent: fmt.Sprintf("%.1f%%", share*100),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Type < entries[j].Type
	})
	return entries
}

// Total is the number of lines covered by entries.
func Total(entries []Entry) int {
	n := 0
	for _, e := range entries {
		n += e.Count
	}
	return n
}

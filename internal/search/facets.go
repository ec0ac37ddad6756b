package search

import (
	"strings"

	"github.com/hsflores7/folio/internal/parse"
)

// Facets is the projects page filter state: a free-text query and an
// optional year chosen from the pie chart or its legend.
type Facets struct {
	Query string
	Year  string
}

// View is everything the projects page draws for one facet state.
type View struct {
	Projects []parse.Project
	Slices   []Slice // computed from the query-filtered set only
	Year     string  // highlighted slice, "" for none
}

// SetQuery returns f with a new trimmed query.
func (f Facets) SetQuery(q string) Facets {
	f.Query = strings.TrimSpace(q)
	return f
}

// ToggleYear selects year, or clears the selection when year is already
// selected.
func (f Facets) ToggleYear(year string) Facets {
	if f.Year == year {
		f.Year = ""
	} else {
		f.Year = year
	}
	return f
}

func (f Facets) Options() Options {
	return Options{Query: f.Query, Year: f.Year}
}

// Apply filters the full project list from scratch. The pie ignores the
// year facet so both facets stay visible together.
func (f Facets) Apply(all []parse.Project) View {
	return View{
		Projects: Filter(all, f.Options()),
		Slices:   Slices(Filter(all, Options{Query: f.Query})),
		Year:     f.Year,
	}
}

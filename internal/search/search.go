package search

import (
	"strings"

	"github.com/hsflores7/folio/internal/parse"
)

type Options struct {
	Query string
	Year  string // "" = all years
}

// Slice is one pie wedge: the number of projects from a year.
type Slice struct {
	Label string
	Value int
}

// Result is a matching project with a snippet of its description around the
// first query hit.
type Result struct {
	Project parse.Project
	Snippet string
}

// Matches reports whether p passes both facets. The query is matched as a
// case-insensitive substring of all field values joined by spaces.
func Matches(p parse.Project, opts Options) bool {
	if opts.Year != "" && string(p.Year) != opts.Year {
		return false
	}
	if opts.Query == "" {
		return true
	}
	values := strings.ToLower(strings.Join(p.Values(), " "))
	return strings.Contains(values, strings.ToLower(opts.Query))
}

// Filter returns a new slice of the projects matching opts; projects is not
// modified.
func Filter(projects []parse.Project, opts Options) []parse.Project {
	out := make([]parse.Project, 0, len(projects))
	for _, p := range projects {
		if Matches(p, opts) {
			out = append(out, p)
		}
	}
	return out
}

// Search is Filter with description snippets for display.
func Search(projects []parse.Project, opts Options) []Result {
	matched := Filter(projects, opts)
	results := make([]Result, len(matched))
	for i, p := range matched {
		results[i] = Result{Project: p, Snippet: makeSnippet(p.Description, opts.Query, 30)}
	}
	return results
}

// Slices counts projects per year in order of first appearance. Projects
// without a year are left out.
func Slices(projects []parse.Project) []Slice {
	index := make(map[string]int)
	var out []Slice
	for _, p := range projects {
		y := string(p.Year)
		if y == "" {
			continue
		}
		i, ok := index[y]
		if !ok {
			i = len(out)
			index[y] = i
			out = append(out, Slice{Label: y})
		}
		out[i].Value++
	}
	return out
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	if query == "" {
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if idx < 0 || len(lower) != len(text) {
		// no match (or case folding changed byte offsets), return head
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(query)
	// find rune position of idx
	runePos := len([]rune(text[:idx]))
	start := max(runePos-contextChars, 0)
	end := min(runePos+len(qRunes)+contextChars, len(runes))
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	// wrap the matched part with markers
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

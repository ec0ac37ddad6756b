package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/hsflores7/folio/internal/breakdown"
	"github.com/hsflores7/folio/internal/commits"
	"github.com/hsflores7/folio/internal/search"
	"github.com/mattn/go-runewidth"
)

var hitColor = color.New(color.FgRed, color.Bold)

// highlightKeywords marks case-insensitive matches of query in text.
func highlightKeywords(text, query string) string {
	// case folding that changes byte lengths would shift offsets
	if query == "" || len(strings.ToLower(text)) != len(text) {
		return text
	}
	lower := strings.ToLower(query)
	var b strings.Builder
	i := 0
	for i < len(text) {
		idx := strings.Index(strings.ToLower(text[i:]), lower)
		if idx < 0 {
			break
		}
		pos := i + idx
		b.WriteString(text[i:pos])
		b.WriteString(hitColor.Sprint(text[pos : pos+len(query)]))
		i = pos + len(query)
	}
	b.WriteString(text[i:])
	return b.String()
}

// markSnippet colours the >>>match<<< span of a search snippet.
func markSnippet(s string) string {
	before, rest, ok := strings.Cut(s, ">>>")
	if !ok {
		return s
	}
	hit, after, ok := strings.Cut(rest, "<<<")
	if !ok {
		return s
	}
	return before + hitColor.Sprint(hit) + after
}

// wrapLine breaks line into pieces at most maxWidth columns wide, skipping
// ANSI escape sequences when measuring.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)
		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}
		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}
	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// WriteStats prints the corpus summary.
func WriteStats(w io.Writer, st commits.Stats) {
	fmt.Fprintln(w, color.CyanString("Stats"))
	for _, s := range StatItems(st) {
		fmt.Fprintf(w, "  %-18s %s\n", s.Label+":", s.Value)
	}
}

// WriteBreakdown prints the per-type line counts.
func WriteBreakdown(w io.Writer, entries []breakdown.Entry) {
	fmt.Fprintln(w, color.CyanString("Languages"))
	if len(entries) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "  %-10s %8s lines  %s\n", e.Type, humanize.Comma(int64(e.Count)), e.Percent)
	}
}

// WriteCommits prints one line per commit in the order given.
func WriteCommits(w io.Writer, list []commits.CommitSummary, urlBase string) {
	fmt.Fprintln(w, color.CyanString("Commits"))
	for _, c := range list {
		when := "unknown"
		if c.Datetime != nil {
			when = humanize.Time(*c.Datetime)
		}
		fmt.Fprintf(w, "  %s  %-16s %6s lines  %s\n",
			color.YellowString(shortID(c.ID)), when, humanize.Comma(int64(c.TotalLines)), c.Author)
		if urlBase != "" {
			fmt.Fprintf(w, "      %s\n", c.URL(urlBase))
		}
	}
}

// WriteProjects prints the filtered projects and the year rollup.
func WriteProjects(w io.Writer, results []search.Result, slices []search.Slice, query string, width int) {
	fmt.Fprintln(w, color.CyanString("%d Projects", len(results)))
	for _, s := range slices {
		fmt.Fprintf(w, "  %s (%d)\n", s.Label, s.Value)
	}
	if len(results) == 0 {
		fmt.Fprintln(w, "No projects found.")
		return
	}
	for _, r := range results {
		p := r.Project
		title := highlightKeywords(p.Title, query)
		if p.Year != "" {
			title += color.HiBlackString("  c. %s", p.Year)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, title)
		text := markSnippet(r.Snippet)
		if query == "" {
			text = p.Description
		}
		if text != "" {
			for _, l := range wrapLine(text, width-2) {
				fmt.Fprintf(w, "  %s\n", l)
			}
		}
		if p.URL != "" {
			fmt.Fprintf(w, "  %s\n", color.BlueString(p.URL))
		}
	}
}

func shortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}

package render

import (
	"strings"

	"github.com/hsflores7/folio/internal/config"
	"github.com/hsflores7/folio/internal/parse"
	"github.com/hsflores7/folio/internal/store"
)

// NavLink is one rendered navigation entry.
type NavLink struct {
	Href     string
	Title    string
	Current  bool
	External bool
}

// NavLinks resolves the navigation bar for the page at current, a site
// relative directory such as "" (home) or "projects/". Relative links on
// non-home pages step back to the root; absolute links open in a new tab.
func NavLinks(pages []config.Page, current string) []NavLink {
	isHome := current == ""
	links := make([]NavLink, 0, len(pages))
	for _, p := range pages {
		external := parse.IsURL(p.URL)
		href := p.URL
		if !isHome && !external {
			href = "../" + href
		}
		links = append(links, NavLink{
			Href:     href,
			Title:    p.Title,
			Current:  !external && normalizePage(p.URL) == normalizePage(current),
			External: external,
		})
	}
	return links
}

func normalizePage(u string) string {
	u = strings.TrimSuffix(u, "index.html")
	u = strings.Trim(u, "/")
	return u
}

// rootPrefix is the relative path from a page directory back to the root.
func rootPrefix(current string) string {
	depth := strings.Count(strings.Trim(current, "/"), "/")
	if strings.Trim(current, "/") == "" {
		return ""
	}
	return strings.Repeat("../", depth+1)
}

func schemeOptions(selected store.ColorScheme) []schemeOption {
	var out []schemeOption
	for _, c := range store.Schemes() {
		out = append(out, schemeOption{
			Value:    string(c),
			Label:    c.Label(),
			Selected: c == selected,
		})
	}
	return out
}

// schemeAttr is the data-color-scheme attribute for a saved scheme; the
// automatic scheme leaves it unset.
func schemeAttr(c store.ColorScheme) string {
	if c == store.SchemeAuto {
		return ""
	}
	return string(c)
}

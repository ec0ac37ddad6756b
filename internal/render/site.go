package render

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hsflores7/folio/internal/breakdown"
	"github.com/hsflores7/folio/internal/commits"
	"github.com/hsflores7/folio/internal/config"
	"github.com/hsflores7/folio/internal/parse"
	"github.com/hsflores7/folio/internal/plot"
	"github.com/hsflores7/folio/internal/scan"
	"github.com/hsflores7/folio/internal/search"
	"github.com/hsflores7/folio/internal/store"
)

// latestCount is how many projects the home page shows.
const latestCount = 3

// Generated page directories.
const (
	homePage     = ""
	projectsPage = "projects/"
	metaPage     = "meta/"
)

// Site is one build of the portfolio.
type Site struct {
	Config *config.Config
	Scheme store.ColorScheme
	Facets search.Facets
}

// BuildStats reports what Build wrote.
type BuildStats struct {
	Pages   int
	Copied  int
	Skipped int
}

// PlotOptions derives the scatterplot layout from the config.
func PlotOptions(cfg *config.Config) plot.Options {
	o := plot.DefaultOptions()
	o.NightBefore = cfg.NightBefore
	o.NightAfter = cfg.NightAfter
	if cfg.DayHoursOnly {
		o = o.DayHoursOnly()
	}
	return o
}

// Build copies the hand-written site into the output directory, adding the
// navigation and theme switcher to every page, then writes the generated
// home, projects and meta pages.
func Build(ctx context.Context, s Site) (BuildStats, error) {
	var stats BuildStats
	cfg := s.Config
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return stats, fmt.Errorf("create output dir: %w", err)
	}

	assets, err := scan.Assets(cfg.SiteDir)
	if err != nil {
		return stats, fmt.Errorf("scan site: %w", err)
	}
	for _, f := range assets {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if isGenerated(f.Rel) {
			continue
		}
		dst := filepath.Join(cfg.OutputDir, filepath.FromSlash(f.Rel))
		if f.IsHTML() {
			if err := s.writeChromed(f, dst); err != nil {
				return stats, err
			}
			stats.Pages++
			continue
		}
		if scan.Unchanged(f, dst) {
			stats.Skipped++
			continue
		}
		if err := copyFile(f, dst); err != nil {
			return stats, err
		}
		stats.Copied++
	}

	projects := parse.LoadProjects(ctx, cfg.ProjectsSource)
	records := parse.LoadLOC(ctx, cfg.LOCSource)
	var profile *parse.Profile
	if cfg.GitHubUser != "" {
		profile = parse.LoadProfile(ctx, cfg.GitHubAPI, cfg.GitHubUser)
	}

	pages := []struct {
		dir    string
		title  string
		charts bool
		body   func() (template.HTML, error)
	}{
		{homePage, "Home", false, func() (template.HTML, error) { return s.homeContent(projects, profile) }},
		{projectsPage, "Projects", true, func() (template.HTML, error) { return s.projectsContent(projects) }},
		{metaPage, "Meta", true, func() (template.HTML, error) { return s.metaContent(records) }},
	}
	for _, p := range pages {
		body, err := p.body()
		if err != nil {
			return stats, err
		}
		html, err := s.page(p.dir, p.title, p.charts, body)
		if err != nil {
			return stats, err
		}
		dst := filepath.Join(cfg.OutputDir, filepath.FromSlash(p.dir), "index.html")
		if err := writeFile(dst, []byte(html)); err != nil {
			return stats, err
		}
		stats.Pages++
	}
	return stats, nil
}

func isGenerated(rel string) bool {
	switch rel {
	case homePage + "index.html", projectsPage + "index.html", metaPage + "index.html":
		return true
	}
	return false
}

// pageDir is the site directory a page lives in, e.g. "contact/".
func pageDir(rel string) string {
	dir := path.Dir(rel)
	if dir == "." {
		return ""
	}
	return dir + "/"
}

func (s Site) pageData(dir, title string, charts bool, content template.HTML) pageData {
	scheme := s.Scheme
	if scheme == "" {
		scheme = store.SchemeAuto
	}
	return pageData{
		Title:         title,
		Root:          rootPrefix(dir),
		IsHome:        dir == homePage,
		SchemeAttr:    schemeAttr(scheme),
		DefaultScheme: string(scheme),
		Schemes:       schemeOptions(scheme),
		Nav:           NavLinks(s.Config.Pages, dir),
		Charts:        charts,
		EChartsURL:    EChartsURL,
		Content:       content,
	}
}

func (s Site) page(dir, title string, charts bool, content template.HTML) (template.HTML, error) {
	return renderTemplate("page.html", s.pageData(dir, title, charts, content))
}

// writeChromed copies a hand-written page, inserting the theme switcher and
// navigation after <body> and the theme script before </body>.
func (s Site) writeChromed(f scan.FileInfo, dst string) error {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.Rel, err)
	}
	html, err := s.injectChrome(string(raw), pageDir(f.Rel))
	if err != nil {
		return fmt.Errorf("%s: %w", f.Rel, err)
	}
	return writeFile(dst, []byte(html))
}

func (s Site) injectChrome(html, dir string) (string, error) {
	data := s.pageData(dir, "", false, "")
	switcher, err := renderTemplate("switcher.html", data)
	if err != nil {
		return "", err
	}
	nav, err := renderTemplate("nav.html", data.Nav)
	if err != nil {
		return "", err
	}
	script, err := renderTemplate("theme_script.html", data)
	if err != nil {
		return "", err
	}
	head := "\n" + string(switcher) + "\n" + string(nav) + "\n"
	tail := string(script) + "\n"

	lower := strings.ToLower(html)
	if i := strings.Index(lower, "<body"); i >= 0 {
		if j := strings.Index(lower[i:], ">"); j >= 0 {
			at := i + j + 1
			html = html[:at] + head + html[at:]
		}
	} else {
		html = head + html
	}

	lower = strings.ToLower(html)
	if i := strings.LastIndex(lower, "</body>"); i >= 0 {
		html = html[:i] + tail + html[i:]
	} else {
		html += tail
	}
	return html, nil
}

// imagePath resolves a project image for a page: absolute URLs are kept,
// local ones are relative to lib/.
func imagePath(image string, isHome bool) string {
	if image == "" || parse.IsURL(image) {
		return image
	}
	if isHome {
		return "lib/" + image
	}
	return "../lib/" + image
}

func cards(projects []parse.Project, isHome bool) []cardData {
	out := make([]cardData, len(projects))
	for i, p := range projects {
		out[i] = cardData{
			Title:       p.Title,
			Image:       imagePath(p.Image, isHome),
			Description: p.Description,
			Year:        string(p.Year),
			URL:         p.URL,
		}
	}
	return out
}

func (s Site) homeContent(projects []parse.Project, profile *parse.Profile) (template.HTML, error) {
	latest := projects
	if len(latest) > latestCount {
		latest = latest[:latestCount]
	}
	heading := "Home"
	if s.Config.GitHubUser != "" {
		heading = s.Config.GitHubUser
	}
	data := homeData{Heading: heading, Cards: cards(latest, true)}
	if profile != nil {
		data.Profile = &profileData{
			AvatarURL:   profile.AvatarURL,
			Followers:   profile.Followers,
			Following:   profile.Following,
			PublicRepos: profile.PublicRepos,
			PublicGists: profile.PublicGists,
		}
	}
	return renderTemplate("home.html", data)
}

func (s Site) projectsContent(projects []parse.Project) (template.HTML, error) {
	view := s.Facets.Apply(projects)

	legend := make([]legendItem, len(view.Slices))
	for i, sl := range view.Slices {
		legend[i] = legendItem{
			Label:    sl.Label,
			Value:    sl.Value,
			Color:    SliceColor(i),
			Selected: sl.Label == view.Year,
		}
	}

	var pie template.HTML
	if len(view.Slices) > 0 {
		var err error
		pie, err = renderChart(PieChart(view.Slices, view.Year))
		if err != nil {
			return "", err
		}
	}

	return renderTemplate("projects.html", projectsData{
		Count:  len(view.Projects),
		Query:  s.Facets.Query,
		Pie:    pie,
		Legend: legend,
		Cards:  cards(view.Projects, false),
	})
}

func (s Site) metaContent(records []parse.LineRecord) (template.HTML, error) {
	list := commits.Aggregate(records)
	st := commits.Summarize(records, list)
	p := plot.Build(list, PlotOptions(s.Config))

	var chart template.HTML
	if !p.Empty() {
		var err error
		chart, err = renderChart(ScatterChart(p))
		if err != nil {
			return "", err
		}
	}

	var langs []languageItem
	for _, e := range breakdown.Compute(list) {
		langs = append(langs, languageItem{Type: e.Type, Count: e.Count, Percent: e.Percent})
	}

	return renderTemplate("meta.html", metaData{
		Stats:     StatItems(st),
		Chart:     chart,
		Languages: langs,
	})
}

// StatItems are the labelled stats shown on the meta page and in the
// terminal explorer.
func StatItems(st commits.Stats) []StatItem {
	return []StatItem{
		{"Total LOC", humanize.Comma(int64(st.TotalLines))},
		{"Total commits", humanize.Comma(int64(st.TotalCommits))},
		{"Longest file", humanize.Comma(int64(st.LongestFile)) + " lines"},
		{"Average file length", st.MeanLabel()},
		{"Max depth", humanize.Comma(int64(st.MaxDepth))},
		{"Busiest time", st.PeriodLabel()},
	}
}

func writeFile(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", dst, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}

// copyFile copies f to dst and stamps dst with f's mtime so the next build
// can skip it.
func copyFile(f scan.FileInfo, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", dst, err)
	}
	in, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Rel, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", f.Rel, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}

	mtime := time.Unix(f.Mtime, 0)
	if err := os.Chtimes(dst, mtime, mtime); err != nil {
		slog.Default().Warn("could not stamp copied asset", "path", dst, "error", err)
	}
	return nil
}

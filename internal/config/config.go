package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Page is one entry of the site navigation bar.
type Page struct {
	URL   string `toml:"url"`
	Title string `toml:"title"`
}

type Config struct {
	SiteDir        string `toml:"site_dir"`
	OutputDir      string `toml:"output_dir"`
	LOCSource      string `toml:"loc_source"`
	ProjectsSource string `toml:"projects_source"`
	DBPath         string `toml:"db_path"`
	GitHubUser     string `toml:"github_user"`
	GitHubAPI      string `toml:"github_api"`
	CommitURLBase  string `toml:"commit_url_base"`

	// Commits before NightBefore or after NightAfter (local hour) are
	// drawn in the night colour.
	NightBefore  int  `toml:"night_before"`
	NightAfter   int  `toml:"night_after"`
	DayHoursOnly bool `toml:"day_hours_only"`

	Pages []Page `toml:"pages"`
}

// DefaultPages mirrors the navigation of the published site.
func DefaultPages() []Page {
	return []Page{
		{URL: "", Title: "Home"},
		{URL: "projects/", Title: "Projects"},
		{URL: "meta/", Title: "Meta"},
		{URL: "contact/", Title: "Contact"},
		{URL: "resume/", Title: "Resume"},
		{URL: "hyperfixations/", Title: "Hyperfixations"},
	}
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(home, ".config", "folio", "config.toml"), home)
}

// LoadFile applies the config at cfgPath (if it exists) over the defaults.
func LoadFile(cfgPath, home string) (*Config, error) {
	cfg := &Config{
		SiteDir:        "site",
		OutputDir:      "public",
		LOCSource:      filepath.Join("site", "meta", "loc.csv"),
		ProjectsSource: filepath.Join("site", "lib", "projects.json"),
		DBPath:         filepath.Join(home, ".config", "folio", "folio.db"),
		GitHubAPI:      "https://api.github.com",
		CommitURLBase:  "https://github.com/hsflores7/portfolio-dsc106/commit",
		NightBefore:    6,
		NightAfter:     18,
	}

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	if len(cfg.Pages) == 0 {
		cfg.Pages = DefaultPages()
	}

	// expand ~ in paths
	cfg.SiteDir = expandHome(cfg.SiteDir, home)
	cfg.OutputDir = expandHome(cfg.OutputDir, home)
	cfg.LOCSource = expandHome(cfg.LOCSource, home)
	cfg.ProjectsSource = expandHome(cfg.ProjectsSource, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}

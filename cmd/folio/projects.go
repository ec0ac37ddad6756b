package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hsflores7/folio/internal/config"
	"github.com/hsflores7/folio/internal/parse"
	"github.com/hsflores7/folio/internal/render"
	"github.com/hsflores7/folio/internal/search"
	"github.com/hsflores7/folio/internal/tui"
)

func projectsCmd() *cobra.Command {
	var query, year string
	var plain, build bool

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Search projects and browse them by year",
		Long: `Opens the projects browser when stdout is a terminal. Type to search;
tab/shift+tab pick a year and enter toggles it, or click the year bar and
legend. With --build the projects page is rebuilt with the final filter.

When piped, prints the matching projects and the per-year counts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			projects := parse.LoadProjects(cmd.Context(), cfg.ProjectsSource)
			facets := search.Facets{}.SetQuery(query)
			if year != "" {
				facets = facets.ToggleYear(year)
			}

			fd := int(os.Stdout.Fd())
			if !plain && term.IsTerminal(fd) {
				final, err := tui.RunProjects(projects, facets)
				if err != nil {
					return err
				}
				if !build {
					return nil
				}
				site := render.Site{Config: cfg, Scheme: loadScheme(cfg), Facets: final}
				return runBuild(cmd.Context(), site)
			}

			width := 80
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				width = w
			}
			results := search.Search(projects, facets.Options())
			render.WriteProjects(cmd.OutOrStdout(), results, facets.Apply(projects).Slices, facets.Query, width)
			if build {
				site := render.Site{Config: cfg, Scheme: loadScheme(cfg), Facets: facets}
				if err := runBuild(cmd.Context(), site); err != nil {
					return fmt.Errorf("projects: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Initial search query")
	cmd.Flags().StringVar(&year, "year", "", "Initial year filter")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print text even on a terminal")
	cmd.Flags().BoolVar(&build, "build", false, "Rebuild the site with the chosen filter")

	return cmd
}

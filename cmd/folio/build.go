package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hsflores7/folio/internal/config"
	"github.com/hsflores7/folio/internal/parse"
	"github.com/hsflores7/folio/internal/render"
	"github.com/hsflores7/folio/internal/search"
	"github.com/hsflores7/folio/internal/store"
	"github.com/hsflores7/folio/internal/watch"
)

func buildCmd() *cobra.Command {
	var watchMode bool
	var query, year string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the portfolio site to the output directory",
		Long: `Copies the hand-written pages under site_dir into output_dir with the
navigation bar and theme switcher added, then generates the home, projects
and meta pages from the project list and the lines-of-code log.

--query and --year prefilter the projects page. --watch rebuilds whenever
the site directory or a local data file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			facets := search.Facets{}.SetQuery(query)
			if year != "" {
				facets = facets.ToggleYear(year)
			}
			site := render.Site{Config: cfg, Scheme: loadScheme(cfg), Facets: facets}

			fmt.Fprintf(os.Stderr, "Building site...\n")
			fmt.Fprintf(os.Stderr, "  Site:     %s\n", cfg.SiteDir)
			fmt.Fprintf(os.Stderr, "  Output:   %s\n", cfg.OutputDir)
			fmt.Fprintf(os.Stderr, "  Theme:    %s\n", site.Scheme.Label())
			if err := runBuild(ctx, site); err != nil {
				return err
			}
			if !watchMode {
				return nil
			}
			return watchAndBuild(ctx, site)
		},
	}

	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Rebuild when sources change")
	cmd.Flags().StringVar(&query, "query", "", "Prefilter the projects page")
	cmd.Flags().StringVar(&year, "year", "", "Preselect a year on the projects page")

	return cmd
}

func runBuild(ctx context.Context, site render.Site) error {
	stats, err := render.Build(ctx, site)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Done. %d pages, %d assets copied, %d unchanged\n", stats.Pages, stats.Copied, stats.Skipped)
	return nil
}

func watchAndBuild(ctx context.Context, site render.Site) error {
	paths := watchPaths(site.Config)
	if len(paths) == 0 {
		return errors.New("watch: nothing local to watch")
	}
	w, err := watch.New(paths)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	fmt.Fprintf(os.Stderr, "Watching %s (ctrl+c to stop)\n", strings.Join(paths, ", "))
	err = watch.Loop(ctx, w.Events(), watch.Quiet, func(changed []string) {
		slog.Default().Debug("rebuild", "changed", changed)
		fmt.Fprintf(os.Stderr, "Changed: %s\n", strings.Join(changed, ", "))
		site.Scheme = loadScheme(site.Config)
		if err := runBuild(ctx, site); err != nil {
			slog.Default().Warn("rebuild failed", "error", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchPaths lists the existing local inputs of a build. Remote data
// sources are fetched on every build and have nothing to watch.
func watchPaths(cfg *config.Config) []string {
	var out []string
	for _, p := range []string{cfg.SiteDir, cfg.LOCSource, cfg.ProjectsSource} {
		if p == "" || parse.IsURL(p) {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

// loadScheme reads the saved theme. A missing or broken store falls back to
// automatic so builds never fail on it.
func loadScheme(cfg *config.Config) store.ColorScheme {
	db, err := store.OpenDB(cfg.DBPath)
	if err != nil {
		slog.Default().Warn("open preference store", "path", cfg.DBPath, "error", err)
		return store.SchemeAuto
	}
	defer db.Close()

	scheme, err := db.ColorScheme()
	if err != nil {
		slog.Default().Warn("read theme", "error", err)
	}
	return scheme
}

package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hsflores7/folio/internal/commits"
	"github.com/hsflores7/folio/internal/config"
	"github.com/hsflores7/folio/internal/parse"
	"github.com/hsflores7/folio/internal/scan"
	"github.com/hsflores7/folio/internal/store"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify sources, data files, preference DB and output",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			ctx := cmd.Context()

			// check directories
			fmt.Println("=== Directories ===")
			checkDir("Site", cfg.SiteDir)
			checkDir("Output", cfg.OutputDir)

			// scan site files
			fmt.Println("\n=== Site Scan ===")
			files, err := scan.Assets(cfg.SiteDir)
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else {
				pages, size := 0, int64(0)
				for _, f := range files {
					if f.IsHTML() {
						pages++
					}
					size += f.Size
				}
				fmt.Printf("  HTML pages: %d\n", pages)
				fmt.Printf("  Assets:     %d (%s)\n", len(files)-pages, humanize.Bytes(uint64(size)))
			}

			// check data sources
			fmt.Println("\n=== Data ===")
			checkSource("LOC", cfg.LOCSource)
			records := parse.LoadLOC(ctx, cfg.LOCSource)
			list := commits.Aggregate(records)
			fmt.Printf("  Lines:    %s\n", humanize.Comma(int64(len(records))))
			fmt.Printf("  Commits:  %s\n", humanize.Comma(int64(len(list))))
			undated := 0
			for _, c := range list {
				if c.Datetime == nil {
					undated++
				}
			}
			if undated > 0 {
				fmt.Printf("  Undated:  %d (not plotted)\n", undated)
			}

			checkSource("Projects", cfg.ProjectsSource)
			projects := parse.LoadProjects(ctx, cfg.ProjectsSource)
			fmt.Printf("  Projects: %d\n", len(projects))

			if cfg.GitHubUser != "" {
				if p := parse.LoadProfile(ctx, cfg.GitHubAPI, cfg.GitHubUser); p != nil {
					fmt.Printf("  GitHub:   %s (OK, %d public repos)\n", cfg.GitHubUser, p.PublicRepos)
				} else {
					fmt.Printf("  GitHub:   %s (UNAVAILABLE, profile card omitted)\n", cfg.GitHubUser)
				}
			}

			// check DB
			fmt.Println("\n=== Preferences ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'folio theme <scheme>' to create)")
				return nil
			}

			db, err := store.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			count, err := db.PrefCount()
			if err != nil {
				return fmt.Errorf("count preferences: %w", err)
			}
			scheme, err := db.ColorScheme()
			if err != nil {
				fmt.Printf("  Theme error: %v\n", err)
			}
			fmt.Printf("  Entries: %d\n", count)
			fmt.Printf("  Theme:   %s\n", scheme.Label())

			if info, err := os.Stat(cfg.DBPath); err == nil {
				fmt.Printf("\n=== DB Size: %s ===\n", humanize.Bytes(uint64(info.Size())))
			}

			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}

func checkSource(name, source string) {
	switch {
	case source == "":
		fmt.Printf("  %s: (not configured)\n", name)
	case parse.IsURL(source):
		fmt.Printf("  %s: %s (remote)\n", name, source)
	default:
		if _, err := os.Stat(source); err != nil {
			fmt.Printf("  %s: %s (NOT FOUND)\n", name, source)
		} else {
			fmt.Printf("  %s: %s (OK)\n", name, source)
		}
	}
}

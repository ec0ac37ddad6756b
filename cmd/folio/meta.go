package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hsflores7/folio/internal/breakdown"
	"github.com/hsflores7/folio/internal/commits"
	"github.com/hsflores7/folio/internal/config"
	"github.com/hsflores7/folio/internal/parse"
	"github.com/hsflores7/folio/internal/render"
	"github.com/hsflores7/folio/internal/tui"
)

func metaCmd() *cobra.Command {
	var dayHours, plain bool
	var limit int

	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Explore commits from the lines-of-code log",
		Long: `Opens the commit explorer when stdout is a terminal: a scatterplot of
commits by date and time of day. Drag to brush a selection, hover or click a
dot for details, press enter on a pinned dot to copy its commit link.

When piped, prints the summary stats, the language breakdown and the most
recent commits as plain text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dayHours {
				cfg.DayHoursOnly = true
			}

			records := parse.LoadLOC(cmd.Context(), cfg.LOCSource)

			// Interactive TUI when stdout is a terminal; plain text for pipes
			if !plain && term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.RunExplore(tui.ExploreConfig{
					Options:   render.PlotOptions(cfg),
					LOCSource: cfg.LOCSource,
					URLBase:   cfg.CommitURLBase,
				}, records)
			}

			if len(records) == 0 {
				fmt.Fprintln(os.Stderr, "No commit data.")
				return nil
			}

			list := commits.Aggregate(records)
			out := cmd.OutOrStdout()
			render.WriteStats(out, commits.Summarize(records, list))
			fmt.Fprintln(out)
			render.WriteBreakdown(out, breakdown.Compute(list))
			fmt.Fprintln(out)
			render.WriteCommits(out, recent(list, limit), cfg.CommitURLBase)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dayHours, "day-hours", false, "Limit the y axis to 8 AM - midnight")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print text even on a terminal")
	cmd.Flags().IntVar(&limit, "limit", 20, "Commits to list in text mode (0 = all)")

	return cmd
}

// recent returns up to limit commits, newest first. Commits without a
// timestamp sort last.
func recent(list []commits.CommitSummary, limit int) []commits.CommitSummary {
	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b commits.CommitSummary) int {
		switch {
		case a.Datetime == nil && b.Datetime == nil:
			return 0
		case a.Datetime == nil:
			return 1
		case b.Datetime == nil:
			return -1
		}
		return b.Datetime.Compare(*a.Datetime)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

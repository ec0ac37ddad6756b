package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsflores7/folio/internal/commits"
	"github.com/hsflores7/folio/internal/config"
	"github.com/hsflores7/folio/internal/open"
	"github.com/hsflores7/folio/internal/parse"
)

func openCmd() *cobra.Command {
	var page string

	cmd := &cobra.Command{
		Use:   "open [commit]",
		Short: "Open a commit's page or a built site page in the browser",
		Long: `With a commit id or unique prefix, opens the commit under commit_url_base.
Otherwise opens a page of the built site (the home page by default).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return open.Page(cfg.OutputDir, page)
			}
			if cfg.CommitURLBase == "" {
				return fmt.Errorf("commit_url_base is not configured")
			}

			list := commits.Aggregate(parse.LoadLOC(cmd.Context(), cfg.LOCSource))
			url, err := open.Commit(list, args[0], cfg.CommitURLBase)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	cmd.Flags().StringVar(&page, "page", "", "Site page to open, e.g. projects/")

	return cmd
}

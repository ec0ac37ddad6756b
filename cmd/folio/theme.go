package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hsflores7/folio/internal/config"
	"github.com/hsflores7/folio/internal/store"
)

func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|auto]",
		Short:     "Show or set the site colour scheme",
		Long:      `Without an argument prints the saved scheme. The next build preselects it in every page's theme switcher.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "auto"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := store.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				scheme, err := db.ColorScheme()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, scheme.Label())
				return nil
			}

			scheme, err := store.ParseColorScheme(args[0])
			if err != nil {
				return err
			}
			if err := db.SetColorScheme(scheme); err != nil {
				return err
			}
			fmt.Fprintf(out, "Theme set to %s. Run 'folio build' to apply.\n", scheme.Label())
			return nil
		},
	}
}

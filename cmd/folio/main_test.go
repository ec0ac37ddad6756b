package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hsflores7/folio/internal/commits"
	"github.com/hsflores7/folio/internal/config"
	"github.com/hsflores7/folio/internal/store"
)

func TestRecent(t *testing.T) {
	t.Parallel()

	day := func(d int) *time.Time {
		v := time.Date(2025, 2, d, 12, 0, 0, 0, time.UTC)
		return &v
	}
	list := []commits.CommitSummary{
		{ID: "a", Datetime: day(3)},
		{ID: "b"},
		{ID: "c", Datetime: day(9)},
		{ID: "d", Datetime: day(5)},
	}

	ids := func(l []commits.CommitSummary) []string {
		var out []string
		for _, c := range l {
			out = append(out, c.ID)
		}
		return out
	}
	require.Equal(t, []string{"c", "d", "a", "b"}, ids(recent(list, 0)))
	require.Equal(t, []string{"c", "d"}, ids(recent(list, 2)))
	require.Equal(t, "a", list[0].ID, "input is left in place")
}

func TestWatchPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	site := filepath.Join(dir, "site")
	require.NoError(t, os.MkdirAll(site, 0o755))
	loc := filepath.Join(dir, "loc.csv")
	require.NoError(t, os.WriteFile(loc, []byte("file\n"), 0o644))

	cfg := &config.Config{
		SiteDir:        site,
		LOCSource:      loc,
		ProjectsSource: "https://example.com/projects.json",
	}
	require.Equal(t, []string{site, loc}, watchPaths(cfg))

	cfg.LOCSource = filepath.Join(dir, "missing.csv")
	require.Equal(t, []string{site}, watchPaths(cfg))
}

func TestLoadSchemeFallsBack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := &config.Config{DBPath: filepath.Join(dir, "folio.db")}
	require.Equal(t, store.SchemeAuto, loadScheme(cfg))

	db, err := store.OpenDB(cfg.DBPath)
	require.NoError(t, err)
	require.NoError(t, db.SetColorScheme(store.SchemeDark))
	require.NoError(t, db.Close())
	require.Equal(t, store.SchemeDark, loadScheme(cfg))

	// a directory where the DB should be cannot be opened
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.MkdirAll(blocked, 0o755))
	require.Equal(t, store.SchemeAuto, loadScheme(&config.Config{DBPath: blocked}))
}

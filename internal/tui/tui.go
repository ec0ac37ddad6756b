package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hsflores7/folio/internal/open"
	"github.com/hsflores7/folio/internal/parse"
	"github.com/hsflores7/folio/internal/search"
)

// RunExplore starts the commit explorer and blocks until it exits.
func RunExplore(cfg ExploreConfig, records []parse.LineRecord) error {
	if cfg.Copy == nil {
		cfg.Copy = clipboard.WriteAll
	}
	if cfg.Open == nil {
		cfg.Open = open.Browser
	}
	m := newExploreModel(cfg, records)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// RunProjects starts the projects browser and returns the facets in effect
// when it exits.
func RunProjects(projects []parse.Project, facets search.Facets) (search.Facets, error) {
	m := newProjectsModel(projects, facets)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return facets, fmt.Errorf("tui: %w", err)
	}
	return finalModel.(projectsModel).facets, nil
}

package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary   = lipgloss.Color("12")  // bright blue
	colorDim       = lipgloss.Color("240") // gray
	colorHighlight = lipgloss.Color("11")  // bright yellow
	colorBorder    = lipgloss.Color("238") // dark gray
	colorNight     = lipgloss.Color("67")  // steel blue
	colorDay       = lipgloss.Color("214") // orange
	colorSelected  = lipgloss.Color("203") // coral
	colorBrush     = lipgloss.Color("236")

	// Input area
	styleInput = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	// Scatterplot glyphs
	styleNight = lipgloss.NewStyle().
			Foreground(colorNight)

	styleDay = lipgloss.NewStyle().
			Foreground(colorDay)

	styleSelected = lipgloss.NewStyle().
			Foreground(colorSelected).
			Bold(true)

	styleFocus = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	styleAxis = lipgloss.NewStyle().
			Foreground(colorDim)

	styleTooltip = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("237"))

	// Panels
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	// Project cards
	styleCardTitle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	styleCardBody = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	// Panel titles
	styleTitle = lipgloss.NewStyle().
			Foreground(colorDim).
			Bold(true)
)

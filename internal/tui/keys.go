package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Quit     key.Binding
	Clear    key.Binding
	Open     key.Binding
	Reload   key.Binding
	NextYear key.Binding
	PrevYear key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+k"),
		key.WithHelp("up/C-k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+j"),
		key.WithHelp("dn/C-j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "copy link / toggle year"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c", "backspace"),
		key.WithHelp("c", "clear brush"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open commit"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	NextYear: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next year"),
	),
	PrevYear: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev year"),
	),
}

package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit              key.Binding
	Edit              key.Binding
	ToggleMode        key.Binding
	ToggleInteractive key.Binding
	Reload            key.Binding
	Help              key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.ToggleMode, k.ToggleInteractive, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Edit, k.ToggleMode, k.ToggleInteractive, k.Reload},
		{k.Help, k.Quit},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit settings"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle mode"),
		),
		ToggleInteractive: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "simulate interactive"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload settings"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

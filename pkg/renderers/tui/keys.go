package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds terminal keys to combobox interactions.
type KeyMap struct {
	Down   key.Binding
	Up     key.Binding
	Commit key.Binding
	Close  key.Binding
	Clear  key.Binding
	Leave  key.Binding // focus leaves the widget; acts as an outside click
	Done   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous"),
	),
	Commit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "choose"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "clear"),
	),
	Leave: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "leave"),
	),
	Done: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "accept"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "abort"),
	),
}

func (k KeyMap) help() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Commit, k.Close, k.Clear, k.Leave, k.Done, k.Quit}
}

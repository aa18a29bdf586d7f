package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Focus
	Enter  key.Binding
	Escape key.Binding
	Tab    key.Binding

	// Selection and rating
	Select     key.Binding
	Add        key.Binding
	RateUp     key.Binding
	RateDown   key.Binding
	RateDigits key.Binding

	// Boxes
	ToggleResults key.Binding
	ToggleSide    key.Binding

	// Actions
	Remove key.Binding
	Filter key.Binding
	Open   key.Binding
	Help   key.Binding
	Quit   key.Binding
	Kill   key.Binding

	// Confirmations
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new search"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close movie"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),

		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "open/close movie"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add to list"),
		),
		RateUp: key.NewBinding(
			key.WithKeys("right", "l", "+"),
			key.WithHelp("→/l", "rate up"),
		),
		RateDown: key.NewBinding(
			key.WithKeys("left", "h", "-"),
			key.WithHelp("←/h", "rate down"),
		),
		RateDigits: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-9,0", "rate"),
		),

		ToggleResults: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "toggle results"),
		),
		ToggleSide: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle side box"),
		),

		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove watched"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter watched"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Kill: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Select, k.RateDigits, k.Add, k.Enter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Enter, k.Escape, k.Tab, k.Help, k.Quit},
		{k.Select, k.RateDown, k.RateUp, k.RateDigits, k.Add, k.Open},
		{k.ToggleResults, k.ToggleSide, k.Filter, k.Remove},
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

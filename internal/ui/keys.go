package ui

import bkey "github.com/charmbracelet/bubbles/key"

// keyMap lists the bindings shown in the footer. Dispatch itself lives in the
// input modes.
type keyMap struct {
	Focus   bkey.Binding
	Search  bkey.Binding
	Locate  bkey.Binding
	Details bkey.Binding
	Help    bkey.Binding
	Quit    bkey.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Focus:   bkey.NewBinding(bkey.WithKeys("tab", "shift+tab"), bkey.WithHelp("tab", "focus")),
		Search:  bkey.NewBinding(bkey.WithKeys("enter"), bkey.WithHelp("enter", "search")),
		Locate:  bkey.NewBinding(bkey.WithKeys("ctrl+l"), bkey.WithHelp("ctrl+l", "location")),
		Details: bkey.NewBinding(bkey.WithKeys("ctrl+d"), bkey.WithHelp("ctrl+d", "details")),
		Help:    bkey.NewBinding(bkey.WithKeys("?"), bkey.WithHelp("?", "help")),
		Quit:    bkey.NewBinding(bkey.WithKeys("ctrl+c"), bkey.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []bkey.Binding {
	return []bkey.Binding{k.Focus, k.Search, k.Locate, k.Details, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]bkey.Binding {
	return [][]bkey.Binding{
		{k.Search, k.Details},
		{k.Locate},
		{k.Focus, k.Help, k.Quit},
	}
}

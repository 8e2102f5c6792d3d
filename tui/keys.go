package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Panic   key.Binding
	Program key.Binding
	Help    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
		Panic:   key.NewBinding(key.WithKeys("p", "space"), key.WithHelp("p", "all notes off")),
		Program: key.NewBinding(key.WithKeys("n", "tab"), key.WithHelp("n", "next instrument")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Program, k.Panic, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Program, k.Panic},
		{k.Help, k.Quit},
	}
}

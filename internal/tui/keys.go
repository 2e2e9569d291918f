package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NewSession  key.Binding
	NewFolder   key.Binding
	Rename      key.Binding
	Color       key.Binding
	Delete      key.Binding
	Bookmark    key.Binding
	Note        key.Binding
	AddQuestion key.Binding
	Submit      key.Binding
	Grade       key.Binding
	Marks       key.Binding
	AutoAdvance key.Binding
	Filter      key.Binding
	Export      key.Binding
	Share       key.Binding
	Tab1        key.Binding
	Tab2        key.Binding
	Help        key.Binding
	Enter       key.Binding
	Back        key.Binding
	Up          key.Binding
	Down        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	NewSession: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new session"),
	),
	NewFolder: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "new folder"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Color: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "cycle color"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Bookmark: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "bookmark"),
	),
	Note: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "note"),
	),
	AddQuestion: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add question"),
	),
	Submit: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "submit"),
	),
	Grade: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "cycle grade"),
	),
	Marks: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "marking scheme"),
	),
	AutoAdvance: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "auto-advance"),
	),
	Filter: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "all/bookmarks"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export report"),
	),
	Share: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "share result"),
	),
	Tab1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "library"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "settings"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewSession, k.NewFolder, k.Enter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewSession, k.NewFolder, k.Rename, k.Color, k.Delete},
		{k.Bookmark, k.Note, k.AddQuestion, k.Submit, k.Grade},
		{k.Marks, k.AutoAdvance, k.Filter, k.Export, k.Share},
		{k.Tab1, k.Tab2, k.Up, k.Down, k.Enter, k.Back, k.Quit},
	}
}

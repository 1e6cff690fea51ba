package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding

	// Navigation
	Editor  key.Binding
	Clients key.Binding
	Archive key.Binding
	Company key.Binding
	Preview key.Binding

	// Actions
	Select key.Binding
	New    key.Binding
	Delete key.Binding
	Save   key.Binding
	Export key.Binding

	// Movement
	Up   key.Binding
	Down key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Editor:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "invoice")),
	Clients: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clients")),
	Archive: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "archive")),
	Company: key.NewBinding(key.WithKeys(","), key.WithHelp(",", "company")),
	Preview: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
	Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	Export:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export pdf")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
}

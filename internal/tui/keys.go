package tui

import "github.com/charmbracelet/bubbles/key"

// StandardKeys defines common key bindings used across TUI components.
type StandardKeys struct {
	Quit    key.Binding
	Select  key.Binding
	Back    key.Binding
	Refresh key.Binding
	Help    key.Binding
}

// NewStandardKeys creates a standard set of key bindings.
func NewStandardKeys() StandardKeys {
	return StandardKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// BookKeys are the actions offered on the book list.
type BookKeys struct {
	Borrow key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

// NewBookKeys creates key bindings for the book list.
func NewBookKeys() BookKeys {
	return BookKeys{
		Borrow: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "borrow")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	}
}

// ReturnKey marks a loan as returned on the borrowings list.
var ReturnKey = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "return"))

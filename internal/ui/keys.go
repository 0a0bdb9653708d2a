package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Insert    key.Binding
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	Reload    key.Binding
	Yank      key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	// Insert and Delete mode
	Commit  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

var _ help.KeyMap = keyMap{}

var keys = keyMap{
	Insert: key.NewBinding(
		key.WithKeys("i", "o", "a"),
		key.WithHelp("i/o/a", "add task"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space/enter", "toggle task"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d d", "delete task"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy text"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Commit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "add"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "confirm delete"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// ShortHelp implements help.KeyMap for normal mode.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Insert, k.Toggle, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap for normal mode.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Insert, k.Toggle, k.Delete},
		{k.Reload, k.Yank},
		{k.Help, k.Quit},
	}
}

// modeHelp returns the bindings shown while a mode other than normal is active.
func (k keyMap) modeHelp(mode Mode) []key.Binding {
	switch mode {
	case ModeInsert:
		return []key.Binding{k.Commit, k.Cancel}
	case ModeDelete:
		return []key.Binding{k.Confirm, k.Cancel}
	default:
		return k.ShortHelp()
	}
}

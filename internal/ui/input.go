package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// newTaskInput builds the single-line editor used in insert mode. It starts
// blurred; entering insert mode focuses it.
//
// The cursor stays at the end of the draft: typing appends and backspace
// removes the last character.
func newTaskInput() textinput.Model {
	t := textinput.New()
	t.Cursor.Style = cursorStyle
	t.Prompt = ""
	t.Placeholder = "New task"
	t.PromptStyle = focusedStyle
	t.TextStyle = insertStyle
	return t
}

// cursorMoved reports whether msg would move the cursor away from the end
// of the draft. Insert mode ignores those keys.
func cursorMoved(t textinput.Model, msg tea.KeyMsg) bool {
	km := t.KeyMap
	return key.Matches(msg,
		km.CharacterForward, km.CharacterBackward,
		km.WordForward, km.WordBackward,
		km.LineStart, km.LineEnd,
	)
}

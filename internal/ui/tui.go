// Package ui provides the interactive task list.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/WillyV3/todot/internal/todo"
)

// Run starts the full-screen task list over store and blocks until the
// user quits or ctx is cancelled. The terminal is restored on return.
func Run(ctx context.Context, store *todo.Store, opts ...Option) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("todot requires a terminal")
	}

	model := NewModel(ctx, store, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

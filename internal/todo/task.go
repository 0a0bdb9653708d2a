// Package todo holds the task list and the operations that mutate it.
package todo

import "fmt"

// Task represents a todo item
type Task struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Glyph returns the checkbox shown in front of the task text.
func (t Task) Glyph() string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

func (t Task) String() string {
	return fmt.Sprintf("%s %s", t.Glyph(), t.Text)
}

// Row is one display line produced by Store.Rows.
type Row struct {
	Index    int
	Task     Task
	Selected bool
}

// Glyph returns the completion checkbox for the row.
func (r Row) Glyph() string {
	return r.Task.Glyph()
}

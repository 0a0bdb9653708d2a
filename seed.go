package main

import "github.com/WillyV3/todot/internal/todo"

// SeedTasks returns a starter list that doubles as a key binding tutorial.
func SeedTasks() []todo.Task {
	return []todo.Task{
		{Text: "Press 'i', 'o' or 'a' to add a task, enter to save it, esc to cancel"},
		{Text: "Move with j/k or the arrow keys"},
		{Text: "Press space or enter to toggle a task", Completed: true},
		{Text: "Press 'd' twice to delete a task (esc cancels)"},
		{Text: "Press 'y' to copy a task, 'r' to reload the list"},
		{Text: "Press '?' for help and 'q' to quit"},
	}
}

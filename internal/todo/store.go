package todo

import (
	"context"
	"errors"
	"iter"
)

// Persister loads and saves the whole task list.
type Persister interface {
	Load(ctx context.Context) ([]Task, error)
	Save(ctx context.Context, tasks []Task) error
}

// Store is the ordered task list plus the current selection. Every mutating
// operation saves the full list through the Persister before returning.
//
// A failed save leaves the mutation in memory; the list on disk lags behind
// until the next successful save.
type Store struct {
	tasks     []Task
	current   int
	persister Persister
}

// NewStore returns an empty store backed by p.
func NewStore(p Persister) *Store {
	return &Store{persister: p}
}

// Open loads the task list through p. On failure it still returns an empty,
// usable store alongside the error.
func Open(ctx context.Context, p Persister) (*Store, error) {
	s := NewStore(p)
	if err := s.Reload(ctx); err != nil {
		return s, err
	}
	return s, nil
}

// Reload replaces the in-memory list with what the persister holds.
func (s *Store) Reload(ctx context.Context) error {
	tasks, err := s.persister.Load(ctx)
	if err != nil {
		return wrap("load", err)
	}
	s.tasks = tasks
	s.clamp()
	return nil
}

// Insert appends a new open task and selects it.
func (s *Store) Insert(ctx context.Context, text string) error {
	s.tasks = append(s.tasks, Task{Text: text})
	s.current = len(s.tasks) - 1
	return s.save(ctx, "insert")
}

// Toggle flips the completion flag of the selected task.
func (s *Store) Toggle(ctx context.Context) error {
	if len(s.tasks) == 0 {
		return nil
	}
	s.tasks[s.current].Completed = !s.tasks[s.current].Completed
	return s.save(ctx, "toggle")
}

// Delete removes the selected task and moves the selection up by one.
func (s *Store) Delete(ctx context.Context) error {
	if len(s.tasks) == 0 {
		return nil
	}
	s.tasks = append(s.tasks[:s.current], s.tasks[s.current+1:]...)
	if s.current > 0 {
		s.current--
	}
	return s.save(ctx, "delete")
}

// Prev moves the selection up.
func (s *Store) Prev() {
	if s.current > 0 {
		s.current--
	}
}

// Next moves the selection down.
func (s *Store) Next() {
	if s.current < len(s.tasks)-1 {
		s.current++
	}
}

// Rows yields one row per task in order. The sequence can be ranged over
// any number of times and has no side effects.
func (s *Store) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for i, task := range s.tasks {
			if !yield(Row{Index: i, Task: task, Selected: i == s.current}) {
				return
			}
		}
	}
}

// Tasks returns a copy of the task list.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Selected returns the task under the cursor.
func (s *Store) Selected() (Task, bool) {
	if len(s.tasks) == 0 {
		return Task{}, false
	}
	return s.tasks[s.current], true
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Current() int {
	return s.current
}

// Stats returns the number of completed tasks and the total.
func (s *Store) Stats() (done, total int) {
	for _, task := range s.tasks {
		if task.Completed {
			done++
		}
	}
	return done, len(s.tasks)
}

func (s *Store) clamp() {
	switch {
	case len(s.tasks) == 0:
		s.current = 0
	case s.current >= len(s.tasks):
		s.current = len(s.tasks) - 1
	}
}

func (s *Store) save(ctx context.Context, op string) error {
	if err := s.persister.Save(ctx, s.Tasks()); err != nil {
		return wrap(op, err)
	}
	return nil
}

func wrap(op string, err error) error {
	var perr *PersistenceError
	if errors.As(err, &perr) {
		return perr
	}
	return &PersistenceError{Op: op, Kind: KindIO, Err: err}
}

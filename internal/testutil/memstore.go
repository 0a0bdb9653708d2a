// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"github.com/WillyV3/todot/internal/todo"
)

// MemStore is an in-memory implementation of todo.Persister for testing.
type MemStore struct {
	mu    sync.Mutex
	tasks []todo.Task
	saves int

	// Error injection for testing
	LoadErr error
	SaveErr error
}

// NewMemStore creates a MemStore holding a copy of tasks.
func NewMemStore(tasks ...todo.Task) *MemStore {
	m := &MemStore{}
	m.tasks = append(m.tasks, tasks...)
	return m
}

// Load returns a copy of the stored tasks.
func (m *MemStore) Load(ctx context.Context) ([]todo.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make([]todo.Task, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}

// Save replaces the stored tasks.
func (m *MemStore) Save(ctx context.Context, tasks []todo.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.tasks = make([]todo.Task, len(tasks))
	copy(m.tasks, tasks)
	m.saves++
	return nil
}

// Saved returns a copy of the last saved list.
func (m *MemStore) Saved() []todo.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]todo.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// SaveCount returns how many saves succeeded.
func (m *MemStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

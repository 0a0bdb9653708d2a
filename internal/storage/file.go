// Package storage persists the task list to a local JSON file or to a
// remote peer speaking the read/write line protocol.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/WillyV3/todot/internal/todo"
)

// DBFile is the file name of the task list inside the data directory.
const DBFile = "db.json"

// FileStore keeps the task list in a single JSON file, rewritten on every save.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore for the db file inside dataDir.
func NewFileStore(dataDir string) *FileStore {
	return &FileStore{path: filepath.Join(dataDir, DBFile)}
}

// Path returns the db file location.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the task list. A missing file is the first-run case and
// yields an empty list.
func (f *FileStore) Load(ctx context.Context) ([]todo.Task, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &todo.PersistenceError{Op: "read db file", Kind: todo.KindIO, Err: err}
	}

	tasks, err := decodeTasks(data)
	if err != nil {
		return nil, &todo.PersistenceError{Op: "read db file", Kind: todo.KindSerialization, Err: err}
	}
	return tasks, nil
}

// Save overwrites the db file with tasks.
func (f *FileStore) Save(ctx context.Context, tasks []todo.Task) error {
	data, err := encodeTasks(tasks)
	if err != nil {
		return &todo.PersistenceError{Op: "write db file", Kind: todo.KindSerialization, Err: err}
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return &todo.PersistenceError{Op: "write db file", Kind: todo.KindSerialization, Err: err}
	}
	out.WriteByte('\n')

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return &todo.PersistenceError{Op: "create data dir", Kind: todo.KindIO, Err: err}
	}
	if err := os.WriteFile(f.path, out.Bytes(), 0644); err != nil {
		return &todo.PersistenceError{Op: "write db file", Kind: todo.KindIO, Err: err}
	}
	return nil
}

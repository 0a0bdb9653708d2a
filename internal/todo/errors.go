package todo

import "fmt"

// ErrorKind classifies persistence failures.
type ErrorKind int

const (
	KindIO ErrorKind = iota
	KindSerialization
	KindMissingFile
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindSerialization:
		return "serialization"
	case KindMissingFile:
		return "missing file"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// PersistenceError is returned whenever loading or saving the task list
// fails. It is recoverable: the in-memory list stays usable.
type PersistenceError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

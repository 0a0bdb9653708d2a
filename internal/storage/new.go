package storage

import (
	"github.com/WillyV3/todot/internal/config"
	"github.com/WillyV3/todot/internal/todo"
)

// New returns the persister selected by cfg: the peer when a server
// address is configured, the local db file otherwise.
func New(cfg *config.Config) todo.Persister {
	if cfg.Remote() {
		return NewRemoteStore(cfg.ServerAddress, cfg.Timeout())
	}
	return NewFileStore(cfg.DataDir)
}

// Describe returns a short human label for where p keeps the list.
func Describe(p todo.Persister) string {
	switch s := p.(type) {
	case *FileStore:
		return s.Path()
	case *RemoteStore:
		return "peer " + s.Addr()
	default:
		return "memory"
	}
}

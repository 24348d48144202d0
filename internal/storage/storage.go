package storage

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack/internal/config"
)

// Store is the persistence boundary: a key-value store holding the full
// serialized ledger under a single fixed key. Every implementation must make
// Put atomic per call - the snapshot is either fully replaced or left intact.
type Store interface {
	// Get returns the stored value for key, or found=false if the key has
	// never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}

// Open builds the configured backend. The returned close function releases
// backend resources and is safe to call once at shutdown.
func Open(cfg config.Storage) (Store, func() error, error) {
	switch cfg.Type {
	case "file":
		s, err := NewFileStore(cfg.File.Dir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	case "sqlite":
		s, err := NewSQLiteStore(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "redis":
		s, err := NewRedisStore(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "memory":
		return NewMemoryStore(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

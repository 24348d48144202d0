package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// FileStore keeps each key as a JSON file inside a directory. Writes go
// through a temp file and rename so a crash mid-write never leaves a torn
// snapshot behind.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create storage directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		err := fmt.Errorf("could not read %s: %w", s.path(key), err)
		log.Error(err)
		return nil, false, err
	}
	return data, true, nil
}

func (s *FileStore) Put(ctx context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		err := fmt.Errorf("could not create temp file: %w", err)
		log.Error(err)
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		err := fmt.Errorf("could not write temp file: %w", err)
		log.Error(err)
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		err := fmt.Errorf("could not replace %s: %w", s.path(key), err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// FileStore keeps each key in its own file under a directory.
//
// Access to a key is serialized across processes with an exclusive flock on
// a sibling lock file. Writes go to a temporary file that is renamed into
// place, so readers never observe a partial value.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.withKeyLock(ctx, key, func(path string) error {
		data, err := readValue(path)
		if err != nil {
			return err
		}
		value = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set implements Store.
func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	return s.withKeyLock(ctx, key, func(path string) error {
		return writeValue(path, value)
	})
}

// Update implements Store.
func (s *FileStore) Update(ctx context.Context, key string, fn func(old []byte, found bool) ([]byte, error)) error {
	return s.withKeyLock(ctx, key, func(path string) error {
		old, err := readValue(path)
		found := true
		if errors.Is(err, ErrNotFound) {
			found = false
		} else if err != nil {
			return err
		}

		value, err := fn(old, found)
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return writeValue(path, value)
	})
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) valuePath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// withKeyLock executes fn while holding an exclusive lock for key.
func (s *FileStore) withKeyLock(ctx context.Context, key string, fn func(path string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.valuePath(key)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path+".lock", os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn(path)
}

func readValue(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read value: %w", err)
	}
	return data, nil
}

// writeValue replaces the file at path with value.
func writeValue(path string, value []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Package kv provides the key-value backends that persist the task list.
package kv

import (
	"context"
	"errors"
	"fmt"

	internalstrings "github.com/amonks/tasks/internal/strings"
	"github.com/amonks/tasks/internal/validation"
)

// ErrNotFound is returned by Get when a key has never been set.
var ErrNotFound = errors.New("key not found")

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a string-keyed blob store.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Update reads the value under key, passes it to fn and stores the
	// result, holding the backend's lock for the whole cycle. found is false
	// when the key has never been set. When fn returns an error nothing is
	// written.
	Update(ctx context.Context, key string, fn func(old []byte, found bool) ([]byte, error)) error

	// Close releases resources held by the store.
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	// BackendFile stores one file per key in a directory.
	BackendFile Backend = "file"

	// BackendSQLite stores keys in a SQLite database.
	BackendSQLite Backend = "sqlite"
)

// ValidBackends returns all supported backend names.
func ValidBackends() []Backend {
	return []Backend{BackendFile, BackendSQLite}
}

// ParseBackend normalizes and validates a backend name.
func ParseBackend(value string) (Backend, error) {
	b := Backend(internalstrings.NormalizeLowerTrimSpace(value))
	if b == "" {
		return BackendFile, nil
	}
	if !validation.OneOf(b, ValidBackends()) {
		return "", validation.FormatInvalidValueError(ErrUnknownBackend, Backend(value), ValidBackends())
	}
	return b, nil
}

// Open opens the store for backend rooted at path. For BackendFile path is a
// directory; for BackendSQLite it is the database file.
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

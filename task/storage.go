package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/amonks/tasks/internal/kv"
)

// StorageKey is the key holding the task list.
const StorageKey = "tasks.v1"

// ErrCorruptStore is returned when the stored value is not a task array.
var ErrCorruptStore = errors.New("stored tasks are corrupt")

// Storage persists the whole task list as one JSON array.
type Storage struct {
	store  kv.Store
	logger zerolog.Logger
}

// NewStorage returns a Storage backed by store.
func NewStorage(store kv.Store, logger zerolog.Logger) *Storage {
	return &Storage{store: store, logger: logger}
}

// Load returns the stored tasks. A missing key, an unreadable backend or a
// corrupt value all yield an empty list; the failure is logged, never
// returned.
func (s *Storage) Load(ctx context.Context) []Task {
	tasks, err := s.LoadStrict(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", StorageKey).Msg("failed to load tasks, starting empty")
		return []Task{}
	}
	return tasks
}

// LoadStrict returns the stored tasks, surfacing read and decode errors. A
// missing key is an empty list.
func (s *Storage) LoadStrict(ctx context.Context) ([]Task, error) {
	data, err := s.store.Get(ctx, StorageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	return decodeStored(data)
}

// Save replaces the stored list with tasks.
func (s *Storage) Save(ctx context.Context, tasks []Task) error {
	data, err := encodeStored(tasks)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	s.logger.Debug().Int("count", len(tasks)).Msg("saved tasks")
	return nil
}

// Update loads the list, applies fn and saves the result while holding the
// backend's lock. A corrupt stored value aborts the update rather than being
// overwritten. Update returns the saved list.
func (s *Storage) Update(ctx context.Context, fn func([]Task) ([]Task, error)) ([]Task, error) {
	var saved []Task
	err := s.store.Update(ctx, StorageKey, func(old []byte, found bool) ([]byte, error) {
		current := []Task{}
		if found {
			decoded, err := decodeStored(old)
			if err != nil {
				return nil, err
			}
			current = decoded
		}

		updated, err := fn(current)
		if err != nil {
			return nil, err
		}
		if err := ValidateCollection(updated); err != nil {
			return nil, err
		}
		saved = updated
		return encodeStored(updated)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int("count", len(saved)).Msg("updated tasks")
	return saved, nil
}

// Close closes the underlying backend.
func (s *Storage) Close() error {
	return s.store.Close()
}

func decodeStored(data []byte) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptStore, err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

func encodeStored(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

package task

import (
	"fmt"
	"strings"

	"github.com/amonks/tasks/internal/ids"
)

// NewIDFunc returns a generator of random task IDs that never repeats an ID
// of the given collections or one it has already returned.
func NewIDFunc(collections ...[]Task) func() string {
	return newIDFunc(ids.New, collections...)
}

func newIDFunc(generate func() string, collections ...[]Task) func() string {
	taken := make(map[string]struct{})
	for _, tasks := range collections {
		for _, t := range tasks {
			taken[strings.ToLower(t.ID)] = struct{}{}
		}
	}
	isTaken := func(id string) bool {
		_, ok := taken[strings.ToLower(id)]
		return ok
	}
	return func() string {
		id := ids.UniqueFrom(generate, isTaken)
		taken[strings.ToLower(id)] = struct{}{}
		return id
	}
}

// IDIndex indexes task IDs for prefix matching and display.
type IDIndex struct {
	ids []string
}

// NewIDIndex builds an IDIndex from a slice of tasks.
func NewIDIndex(tasks []Task) IDIndex {
	taskIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
	}
	return IDIndex{ids: ids.NormalizeUniqueIDs(taskIDs)}
}

// Resolve returns the full task ID for a prefix.
func (index IDIndex) Resolve(prefix string) (string, error) {
	if prefix == "" {
		return "", ErrTaskNotFound
	}

	match, found, ambiguous := ids.MatchPrefixNormalized(index.ids, prefix)
	if !found {
		return "", fmt.Errorf("%w: %s", ErrTaskNotFound, prefix)
	}
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousTaskIDPrefix, prefix)
	}

	return match, nil
}

// ResolveAll resolves each prefix, failing on the first that does not match
// exactly one task. Each task appears once, in first-mention order.
func (index IDIndex) ResolveAll(prefixes []string) ([]string, error) {
	if len(prefixes) == 0 {
		return nil, fmt.Errorf("no task IDs provided")
	}
	resolved := make([]string, 0, len(prefixes))
	seen := make(map[string]struct{}, len(prefixes))
	for _, prefix := range prefixes {
		id, err := index.Resolve(prefix)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		resolved = append(resolved, id)
	}
	return resolved, nil
}

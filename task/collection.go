package task

import (
	"fmt"
	"slices"
	"strings"
	"time"

	internalstrings "github.com/amonks/tasks/internal/strings"
)

// Draft holds user input for a task about to be saved.
type Draft struct {
	// ID is empty for a new task.
	ID               string
	Title            string
	Description      *string
	ExpireAt         *string
	EstimatedMinutes *Minutes
	Completed        bool
	PriorityOverride *Priority
}

// DraftFrom returns a draft pre-populated from an existing task.
func DraftFrom(t Task) Draft {
	return Draft{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		ExpireAt:         t.ExpireAt,
		EstimatedMinutes: t.EstimatedMinutes,
		Completed:        t.Completed,
		PriorityOverride: t.PriorityOverride,
	}
}

// Prepare validates a draft and turns it into a task ready to persist.
//
// The title is trimmed, a new ID is assigned with newID when the draft has
// none, the due date is normalized to RFC 3339 in UTC, and Priority is
// recomputed as of now. The override is stored as given and does not affect
// Priority.
func Prepare(d Draft, now time.Time, newID func() string) (Task, error) {
	title, err := NormalizeTitle(d.Title)
	if err != nil {
		return Task{}, err
	}
	if err := ValidateEstimate(d.EstimatedMinutes); err != nil {
		return Task{}, err
	}
	if d.PriorityOverride != nil && !d.PriorityOverride.IsValid() {
		return Task{}, fmt.Errorf("%w override: %q", ErrInvalidPriority, *d.PriorityOverride)
	}

	var expireAt *string
	if d.ExpireAt != nil && strings.TrimSpace(*d.ExpireAt) != "" {
		due, ok := ParseExpireAt(*d.ExpireAt, now.Location())
		if !ok {
			return Task{}, fmt.Errorf("%w: %q", ErrInvalidDue, *d.ExpireAt)
		}
		expireAt = StringPtr(FormatExpireAt(due))
	}

	var description *string
	if d.Description != nil {
		if text := internalstrings.NormalizeText(*d.Description); strings.TrimSpace(text) != "" {
			description = StringPtr(text)
		}
	}

	id := d.ID
	if id == "" {
		id = newID()
	}

	t := Task{
		ID:               id,
		Title:            title,
		Description:      description,
		ExpireAt:         expireAt,
		EstimatedMinutes: d.EstimatedMinutes,
		Completed:        d.Completed,
		PriorityOverride: d.PriorityOverride,
	}
	t.Priority = ComputePriority(t.Title, t.ExpireAt, t.EstimatedMinutes, now)
	return t, nil
}

// Find returns the task with the given ID.
func Find(tasks []Task, id string) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Upsert returns a copy of tasks with t replacing the task of the same ID, or
// appended when no such task exists.
func Upsert(tasks []Task, t Task) []Task {
	updated := slices.Clone(tasks)
	for i := range updated {
		if updated[i].ID == t.ID {
			updated[i] = t
			return updated
		}
	}
	return append(updated, t)
}

// Toggle returns a copy of tasks with the completion of the task with the
// given ID flipped.
func Toggle(tasks []Task, id string) ([]Task, error) {
	updated := slices.Clone(tasks)
	for i := range updated {
		if updated[i].ID == id {
			updated[i].Completed = !updated[i].Completed
			return updated, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}

// Remove returns a copy of tasks without the task with the given ID.
func Remove(tasks []Task, id string) ([]Task, error) {
	idx := slices.IndexFunc(tasks, func(t Task) bool { return t.ID == id })
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return slices.Delete(slices.Clone(tasks), idx, idx+1), nil
}

// Merge returns a copy of base with every task in incoming upserted by ID.
// Later records win.
func Merge(base []Task, incoming []Task) []Task {
	merged := slices.Clone(base)
	for _, t := range incoming {
		merged = Upsert(merged, t)
	}
	return merged
}

package task

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is the maximum allowed length for a task title, in runes.
const MaxTitleLength = 500

var (
	// ErrEmptyTitle is returned when a task title is empty after trimming.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a task title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrInvalidPriority is returned for an unknown priority name.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidFilter is returned for an unknown filter name.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrNegativeEstimate is returned when an estimate is below zero.
	ErrNegativeEstimate = errors.New("estimate cannot be negative")

	// ErrInvalidDue is returned when a due date given on input cannot be parsed.
	ErrInvalidDue = errors.New("invalid due date")

	// ErrTaskNotFound is returned when a task with the given ID doesn't exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAmbiguousTaskIDPrefix is returned when an ID prefix matches multiple tasks.
	ErrAmbiguousTaskIDPrefix = errors.New("ambiguous task ID prefix")

	// ErrDuplicateID is returned when a collection holds the same ID twice.
	ErrDuplicateID = errors.New("duplicate task ID")
)

// NormalizeTitle trims surrounding whitespace and validates the result.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return "", fmt.Errorf("%w: %d > %d", ErrTitleTooLong, n, MaxTitleLength)
	}
	return title, nil
}

// ValidateEstimate checks that an estimate is non-negative.
func ValidateEstimate(minutes *Minutes) error {
	if minutes != nil && *minutes < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeEstimate, *minutes)
	}
	return nil
}

// ValidateTask checks the invariants of a saved task.
func ValidateTask(t *Task) error {
	if t.ID == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if _, err := NormalizeTitle(t.Title); err != nil {
		return err
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.PriorityOverride != nil && !t.PriorityOverride.IsValid() {
		return fmt.Errorf("%w override: %q", ErrInvalidPriority, *t.PriorityOverride)
	}
	return ValidateEstimate(t.EstimatedMinutes)
}

// ValidateCollection checks that every ID in tasks is unique.
func ValidateCollection(tasks []Task) error {
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

package task

import "time"

// Task is a single persisted record.
//
// The JSON shape is the storage format: one array of these objects under a
// single key.
type Task struct {
	// ID is an opaque unique identifier assigned on first save.
	ID string `json:"id" yaml:"id"`

	// Title is the short summary of the task. Never blank once saved.
	Title string `json:"title" yaml:"title"`

	// Description provides additional context about the task.
	Description *string `json:"description" yaml:"description"`

	// ExpireAt is the due instant as an ISO-8601 string, or nil for no due date.
	// It is stored as text so that unparsable values survive a load and are
	// treated as "no due date" wherever they are read.
	ExpireAt *string `json:"expireAt" yaml:"expireAt"`

	// EstimatedMinutes is the expected effort, or nil when unknown.
	EstimatedMinutes *Minutes `json:"estimatedMinutes" yaml:"estimatedMinutes"`

	// Completed reports whether the task is done.
	Completed bool `json:"completed" yaml:"completed"`

	// Priority is the score-based priority computed on the last save.
	Priority Priority `json:"priority" yaml:"priority"`

	// PriorityOverride, when set, replaces the computed priority for display
	// and filtering. It never changes Priority.
	PriorityOverride *Priority `json:"priorityOverride" yaml:"priorityOverride"`
}

// Due returns the parsed due instant. ok is false when the task has no due
// date or the stored value cannot be parsed. Date-only and offset-less values
// are interpreted in loc.
func (t Task) Due(loc *time.Location) (due time.Time, ok bool) {
	if t.ExpireAt == nil {
		return time.Time{}, false
	}
	return ParseExpireAt(*t.ExpireAt, loc)
}

// Estimate returns the estimate in minutes, or 0 when absent.
func (t Task) Estimate() int {
	if t.EstimatedMinutes == nil || *t.EstimatedMinutes < 0 {
		return 0
	}
	return int(*t.EstimatedMinutes)
}

// DescriptionText returns the description, or "" when absent.
func (t Task) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// Effective returns the priority shown to the user: the override when set,
// otherwise a fresh score against now.
func (t Task) Effective(now time.Time) Priority {
	if t.PriorityOverride != nil && t.PriorityOverride.IsValid() {
		return *t.PriorityOverride
	}
	return ComputePriority(t.Title, t.ExpireAt, t.EstimatedMinutes, now)
}

// Package task implements a personal task list with computed priorities.
//
// A task's priority is derived from its title, due date and time estimate
// (see ComputePriority). Listing resolves every task's effective priority
// against the current instant, orders the collection (see Ordering) and
// narrows it by priority (see MatchesFilter).
//
// Collection edits are pure: Upsert, Toggle and Remove return a new slice and
// never modify their input. Storage persists the collection as a JSON array
// under a single key of a key-value backend.
package task

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	internalstrings "github.com/amonks/tasks/internal/strings"
	"github.com/amonks/tasks/internal/validation"
)

// Priority is the urgency level of a task.
type Priority string

const (
	// PriorityLow is the default level when no signal is present.
	PriorityLow Priority = "low"

	// PriorityMedium marks tasks with a moderate score.
	PriorityMedium Priority = "medium"

	// PriorityHigh marks the most urgent tasks.
	PriorityHigh Priority = "high"
)

// ValidPriorities returns all valid priority values, most urgent first.
func ValidPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank returns the sort rank for a priority. Higher ranks sort first.
// Unknown values rank with low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// ParsePriority normalizes and validates a priority name.
func ParsePriority(value string) (Priority, error) {
	p := Priority(internalstrings.NormalizeLowerTrimSpace(value))
	if !p.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidPriority, Priority(value), ValidPriorities())
	}
	return p, nil
}

// Filter selects which effective priority a view shows.
type Filter string

// FilterAll passes every task.
const FilterAll Filter = "all"

// ValidFilters returns all valid filter values in tab order.
func ValidFilters() []Filter {
	return []Filter{FilterAll, Filter(PriorityHigh), Filter(PriorityMedium), Filter(PriorityLow)}
}

// ParseFilter normalizes and validates a filter name.
func ParseFilter(value string) (Filter, error) {
	f := Filter(internalstrings.NormalizeLowerTrimSpace(value))
	if f == "" {
		return FilterAll, nil
	}
	if f == FilterAll || Priority(f).IsValid() {
		return f, nil
	}
	return "", validation.FormatInvalidValueError(ErrInvalidFilter, Filter(value), ValidFilters())
}

// Minutes is a time estimate in whole minutes.
//
// Decoding is lenient: JSON numbers (truncated) and numeric strings are
// accepted, and anything else decodes to zero, which carries no effort signal.
type Minutes int

// UnmarshalJSON implements json.Unmarshaler.
func (m *Minutes) UnmarshalJSON(b []byte) error {
	*m = 0
	var value any
	if err := json.Unmarshal(b, &value); err != nil {
		return nil
	}

	switch v := value.(type) {
	case float64:
		*m = minutesFromFloat(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			*m = minutesFromFloat(f)
		}
	}
	return nil
}

// UnmarshalYAML accepts the same inputs as UnmarshalJSON.
func (m *Minutes) UnmarshalYAML(unmarshal func(any) error) error {
	*m = 0
	var value any
	if err := unmarshal(&value); err != nil {
		return nil
	}

	switch v := value.(type) {
	case int:
		*m = minutesFromFloat(float64(v))
	case float64:
		*m = minutesFromFloat(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			*m = minutesFromFloat(f)
		}
	}
	return nil
}

func minutesFromFloat(v float64) Minutes {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v > math.MaxInt32 {
		return Minutes(math.MaxInt32)
	}
	return Minutes(v)
}

// MinutesPtr returns a pointer to the provided estimate.
func MinutesPtr(minutes int) *Minutes {
	m := Minutes(minutes)
	return &m
}

// PriorityPtr returns a pointer to the provided priority.
func PriorityPtr(p Priority) *Priority {
	return &p
}

// StringPtr returns a pointer to the provided string.
func StringPtr(value string) *string {
	return &value
}

package task

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is the collation locale for title ordering.
var DefaultLocale = language.BrazilianPortuguese

// Resolved pairs a task with its effective priority and parsed due date as of
// a given instant.
type Resolved struct {
	Task

	// Effective is the override when set, otherwise a fresh score.
	Effective Priority `json:"effectivePriority"`

	due    time.Time
	hasDue bool
}

// DueAt returns the parsed due instant, if any.
func (r Resolved) DueAt() (time.Time, bool) {
	return r.due, r.hasDue
}

// Resolve computes the effective priority of every task as of now. The stored
// Priority field is never consulted: urgency depends on the current time even
// when a task has not been saved recently.
func Resolve(tasks []Task, now time.Time) []Resolved {
	resolved := make([]Resolved, 0, len(tasks))
	for _, t := range tasks {
		due, hasDue := t.Due(now.Location())
		resolved = append(resolved, Resolved{
			Task:      t,
			Effective: t.Effective(now),
			due:       due,
			hasDue:    hasDue,
		})
	}
	return resolved
}

// Ordering is the display order over resolved tasks.
//
// An Ordering holds a collator and must not be shared between goroutines.
type Ordering struct {
	collator *collate.Collator
}

// NewOrdering returns an ordering that compares titles using the collation
// rules of locale.
func NewOrdering(locale language.Tag) *Ordering {
	return &Ordering{collator: collate.New(locale)}
}

// Compare orders a before b when it returns a negative number.
//
// Tasks sort by effective priority (high first), then dated tasks before
// undated ones with earlier due dates first, then by title. Remaining ties
// are broken by raw title bytes and finally by ID so the order never depends
// on input order.
func (o *Ordering) Compare(a, b Resolved) int {
	if c := cmp.Compare(b.Effective.Rank(), a.Effective.Rank()); c != 0 {
		return c
	}

	switch {
	case a.hasDue && b.hasDue:
		if c := a.due.Compare(b.due); c != 0 {
			return c
		}
	case a.hasDue:
		return -1
	case b.hasDue:
		return 1
	}

	if c := o.collator.CompareString(a.Title, b.Title); c != 0 {
		return c
	}
	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// Sort returns a sorted copy of tasks.
func (o *Ordering) Sort(tasks []Resolved) []Resolved {
	sorted := slices.Clone(tasks)
	slices.SortFunc(sorted, o.Compare)
	return sorted
}

// MatchesFilter reports whether a resolved task is visible under filter.
func MatchesFilter(r Resolved, filter Filter) bool {
	if filter == FilterAll || filter == "" {
		return true
	}
	return r.Effective == Priority(filter)
}

// ViewOptions configures View.
type ViewOptions struct {
	// Filter narrows the view by effective priority. Empty means all.
	Filter Filter

	// HideCompleted drops completed tasks.
	HideCompleted bool
}

// View resolves, sorts and filters tasks for display.
func View(tasks []Task, now time.Time, ordering *Ordering, opts ViewOptions) []Resolved {
	if ordering == nil {
		ordering = NewOrdering(DefaultLocale)
	}

	sorted := ordering.Sort(Resolve(tasks, now))
	visible := sorted[:0]
	for _, r := range sorted {
		if opts.HideCompleted && r.Completed {
			continue
		}
		if !MatchesFilter(r, opts.Filter) {
			continue
		}
		visible = append(visible, r)
	}
	return visible
}

package ui

import (
	"fmt"
	"time"
)

// DueLayout is the display format for due dates.
const DueLayout = "02/01/2006 15:04"

// NoDueLabel is shown for tasks without a usable due date.
const NoDueLabel = "Sem data"

// FormatDue renders a due instant in loc, or NoDueLabel when ok is false.
func FormatDue(due time.Time, ok bool, loc *time.Location) string {
	if !ok {
		return NoDueLabel
	}
	if loc != nil {
		due = due.In(loc)
	}
	return due.Format(DueLayout)
}

// FormatDueRelative returns "in 3h" for future instants and "2d overdue"
// for past ones.
func FormatDueRelative(due time.Time, now time.Time) string {
	if due.Before(now) {
		return FormatDurationShort(now.Sub(due)) + " overdue"
	}
	return "in " + FormatDurationShort(due.Sub(now))
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	seconds := int64(duration / time.Second)
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	return fmt.Sprintf("%dd", hours/24)
}

// FormatEstimate renders minutes as "45m", "2h" or "1h30m"; "-" when zero.
func FormatEstimate(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	hours, rest := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", rest)
	case rest == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh%dm", hours, rest)
	}
}

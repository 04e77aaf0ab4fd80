package task

import (
	"strings"
	"time"
)

// Layouts without a zone offset are interpreted in the caller's location.
var localExpireLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseExpireAt parses an ISO-8601 due date.
//
// RFC 3339 values keep their own offset. Date-times without an offset and
// bare dates are interpreted in loc (nil means time.Local). ok is false for
// empty or unparsable input.
func ParseExpireAt(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed, true
	}
	for _, layout := range localExpireLayouts {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// FormatExpireAt renders a due instant in the storage format.
func FormatExpireAt(due time.Time) string {
	return due.UTC().Format(time.RFC3339Nano)
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

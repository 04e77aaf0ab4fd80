package task

import (
	"strings"
	"time"
)

// UrgentKeywords are title substrings that raise a task's score.
var UrgentKeywords = []string{"pagar", "entrega", "reunião", "urgente", "imediato", "prazo"}

// Score weights and thresholds.
const (
	keywordScore = 2

	overdueScore  = 4
	dueTodayScore = 3
	dueDayScore   = 3 // within 24h
	dueTwoDays    = 2 // within 48h

	longEffortMinutes  = 120
	longEffortScore    = 2
	shortEffortMinutes = 60
	shortEffortScore   = 1

	highThreshold   = 5
	mediumThreshold = 3
)

// DueSignal names the due-date branch that contributed to a score.
type DueSignal string

const (
	DueNone     DueSignal = "none"
	DueOverdue  DueSignal = "overdue"
	DueToday    DueSignal = "today"
	DueWithin24 DueSignal = "within-24h"
	DueWithin48 DueSignal = "within-48h"
	DueLater    DueSignal = "later"
)

// ScoreBreakdown records how each signal contributed to a score.
type ScoreBreakdown struct {
	Keyword      string    `json:"keyword,omitempty"`
	KeywordScore int       `json:"keywordScore"`
	Due          DueSignal `json:"due"`
	DueScore     int       `json:"dueScore"`
	EffortScore  int       `json:"effortScore"`
	Total        int       `json:"total"`
	Priority     Priority  `json:"priority"`
}

// ComputePriority maps a task's title, due date and estimate to a priority
// level as of now. It never fails: missing or unparsable inputs contribute
// nothing to the score.
func ComputePriority(title string, expireAt *string, estimatedMinutes *Minutes, now time.Time) Priority {
	return Score(title, expireAt, estimatedMinutes, now).Priority
}

// Score computes the additive score behind ComputePriority.
func Score(title string, expireAt *string, estimatedMinutes *Minutes, now time.Time) ScoreBreakdown {
	var b ScoreBreakdown

	b.Keyword = urgentKeyword(title)
	if b.Keyword != "" {
		b.KeywordScore = keywordScore
	}

	b.Due = DueNone
	if expireAt != nil {
		if due, ok := ParseExpireAt(*expireAt, now.Location()); ok {
			b.Due, b.DueScore = dueSignal(due, now)
		}
	}

	estimated := 0
	if estimatedMinutes != nil {
		estimated = int(*estimatedMinutes)
	}
	switch {
	case estimated >= longEffortMinutes:
		b.EffortScore = longEffortScore
	case estimated >= shortEffortMinutes:
		b.EffortScore = shortEffortScore
	}

	b.Total = b.KeywordScore + b.DueScore + b.EffortScore
	b.Priority = priorityForScore(b.Total)
	return b
}

// urgentKeyword returns the first urgent keyword contained in title.
func urgentKeyword(title string) string {
	normalized := strings.ToLower(title)
	for _, keyword := range UrgentKeywords {
		if strings.Contains(normalized, keyword) {
			return keyword
		}
	}
	return ""
}

func dueSignal(due, now time.Time) (DueSignal, int) {
	if due.Before(now) {
		return DueOverdue, overdueScore
	}
	if sameCalendarDay(due.In(now.Location()), now) {
		return DueToday, dueTodayScore
	}

	// Whole hours, truncated. due is not before now, so this is never negative.
	hoursUntilDue := int64(due.Sub(now) / time.Hour)
	switch {
	case hoursUntilDue <= 24:
		return DueWithin24, dueDayScore
	case hoursUntilDue <= 48:
		return DueWithin48, dueTwoDays
	default:
		return DueLater, 0
	}
}

func priorityForScore(score int) Priority {
	switch {
	case score >= highThreshold:
		return PriorityHigh
	case score >= mediumThreshold:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

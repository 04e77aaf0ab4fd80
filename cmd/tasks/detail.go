package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/amonks/tasks/internal/markdown"
	"github.com/amonks/tasks/internal/ui"
	"github.com/amonks/tasks/task"
)

const detailLineWidth = 80

// formatTaskDetail renders every field of a task.
func formatTaskDetail(r task.Resolved, now time.Time, palette ui.Palette, prefixLengths map[string]int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ID:        %s\n", palette.ID(r.ID, ui.PrefixLength(prefixLengths, r.ID)))
	fmt.Fprintf(&b, "Title:     %s\n", r.Title)

	computed := task.Score(r.Title, r.ExpireAt, r.EstimatedMinutes, now)
	if r.PriorityOverride != nil {
		fmt.Fprintf(&b, "Priority:  %s (pinned; computed %s)\n", palette.Badge(r.Effective), computed.Priority)
	} else {
		fmt.Fprintf(&b, "Priority:  %s (score %d)\n", palette.Badge(r.Effective), computed.Total)
	}

	due, hasDue := r.DueAt()
	if hasDue {
		fmt.Fprintf(&b, "Due:       %s (%s)\n", ui.FormatDue(due, true, now.Location()), ui.FormatDueRelative(due, now))
	} else {
		fmt.Fprintf(&b, "Due:       %s\n", palette.Muted(ui.NoDueLabel))
	}

	fmt.Fprintf(&b, "Estimate:  %s\n", ui.FormatEstimate(r.Estimate()))

	status := "pending"
	if r.Completed {
		status = "done"
	}
	fmt.Fprintf(&b, "Status:    %s\n", status)

	if description := markdown.SafeRender(detailLineWidth, 2, []byte(r.DescriptionText())); len(description) > 0 {
		fmt.Fprintf(&b, "\nDescription:\n%s\n", description)
	}
	return b.String()
}

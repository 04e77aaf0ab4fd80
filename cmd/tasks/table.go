package main

import (
	"time"

	"github.com/amonks/tasks/internal/ui"
	"github.com/amonks/tasks/task"
)

var taskTableHeaders = []string{"ID", "PRI", "DUE", "EST", "DONE", "TITLE"}

// formatTaskTable renders resolved tasks in display order.
func formatTaskTable(tasks []task.Resolved, prefixLengths map[string]int, palette ui.Palette, now time.Time) string {
	builder := ui.NewTableBuilder(taskTableHeaders, len(tasks))

	for _, r := range tasks {
		title := ui.TruncateTableCell(r.Title)
		done := ""
		if r.Completed {
			title = palette.Done(title)
			done = "x"
		}

		due, hasDue := r.DueAt()
		dueCell := ui.FormatDue(due, hasDue, now.Location())
		if !hasDue {
			dueCell = palette.Muted(dueCell)
		}

		estimate := ui.FormatEstimate(r.Estimate())
		if r.Estimate() == 0 {
			estimate = palette.Muted(estimate)
		}

		builder.AddRow(
			palette.ID(r.ID, ui.PrefixLength(prefixLengths, r.ID)),
			palette.Badge(r.Effective),
			dueCell,
			estimate,
			done,
			title,
		)
	}

	return builder.String()
}

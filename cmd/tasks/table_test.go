package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/amonks/tasks/internal/ui"
	"github.com/amonks/tasks/task"
)

var tableNow = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

func tableTasks() []task.Resolved {
	tasks := []task.Task{
		{ID: "abc123", Title: "Pagar conta", ExpireAt: task.StringPtr("2026-03-10T12:00:00Z"), EstimatedMinutes: task.MinutesPtr(90)},
		{ID: "abd456", Title: "Ler livro", Completed: true},
	}
	return task.Resolve(tasks, tableNow)
}

func TestFormatTaskTablePreservesAlignmentWithANSI(t *testing.T) {
	tasks := tableTasks()
	prefixLengths := map[string]int{"abc123": 3, "abd456": 3}

	plain := formatTaskTable(tasks, prefixLengths, ui.Palette{}, tableNow)
	colored := formatTaskTable(tasks, prefixLengths, ui.ANSIPalette(&bytes.Buffer{}), tableNow)

	if colored == plain {
		t.Fatalf("expected ANSI palette to add escape sequences")
	}
	if ansi.Strip(colored) != plain {
		t.Fatalf("expected ANSI output to align with plain output\nplain:\n%s\nansi:\n%s", plain, colored)
	}
}

func TestFormatTaskTableColumns(t *testing.T) {
	output := formatTaskTable(tableTasks(), nil, ui.Palette{}, tableNow)
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got:\n%s", output)
	}

	for _, header := range taskTableHeaders {
		if !strings.Contains(lines[0], header) {
			t.Fatalf("expected header %q in %q", header, lines[0])
		}
	}

	first := strings.Fields(lines[1])
	want := []string{"abc123", "HIGH", "10/03/2026", "12:00", "1h30m", "Pagar", "conta"}
	if strings.Join(first, " ") != strings.Join(want, " ") {
		t.Fatalf("unexpected first row %q", lines[1])
	}

	if !strings.Contains(lines[2], "Sem data") || !strings.Contains(lines[2], " x ") {
		t.Fatalf("expected undated completed row, got %q", lines[2])
	}
}

func TestFormatTaskDetail(t *testing.T) {
	tasks := []task.Task{{
		ID:               "abc123",
		Title:            "Ler livro",
		Description:      task.StringPtr("Capítulo **3**"),
		ExpireAt:         task.StringPtr("2026-03-10T13:00:00Z"),
		PriorityOverride: task.PriorityPtr(task.PriorityHigh),
	}}
	resolved := task.Resolve(tasks, tableNow)

	output := formatTaskDetail(resolved[0], tableNow, ui.Palette{}, nil)
	for _, want := range []string{
		"ID:        abc123",
		"Priority:  HIGH (pinned; computed medium)",
		"Due:       10/03/2026 13:00 (in 3h)",
		"Estimate:  -",
		"Status:    pending",
		"Description:",
		"Capítulo",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected detail to contain %q, got:\n%s", want, output)
		}
	}
}

func TestFormatTaskDetailWithoutDue(t *testing.T) {
	resolved := task.Resolve([]task.Task{{ID: "abc123", Title: "Ler livro"}}, tableNow)

	output := formatTaskDetail(resolved[0], tableNow, ui.Palette{}, nil)
	if !strings.Contains(output, "Due:       Sem data") {
		t.Fatalf("expected placeholder due, got:\n%s", output)
	}
	if !strings.Contains(output, "Priority:  LOW (score 0)") {
		t.Fatalf("expected score, got:\n%s", output)
	}
	if strings.Contains(output, "Description:") {
		t.Fatalf("expected no description section, got:\n%s", output)
	}
}

func TestFormatScoreBreakdown(t *testing.T) {
	breakdown := task.Score("Pagar conta", task.StringPtr("2026-03-10T12:00:00Z"), task.MinutesPtr(60), tableNow)

	output := formatScoreBreakdown(breakdown, ui.Palette{})
	for _, want := range []string{"pagar", "today", "+3", "+1", "HIGH", "6"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected breakdown to contain %q, got:\n%s", want, output)
		}
	}
}

func TestEmptyListMessage(t *testing.T) {
	cases := []struct {
		name    string
		total   int
		filter  task.Filter
		pending bool
		want    string
	}{
		{name: "nothing stored", total: 0, filter: task.Filter(task.PriorityHigh), want: "No tasks found."},
		{name: "filtered", total: 2, filter: task.Filter(task.PriorityHigh), want: "No tasks found with priority high."},
		{name: "pending", total: 2, filter: task.FilterAll, pending: true, want: "No pending tasks found."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := emptyListMessage(tc.total, tc.filter, tc.pending); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestLogHighlighterUsesPrefixLengths(t *testing.T) {
	highlight := logHighlighter(map[string]int{"abc123": 2}, func(id string, prefix int) string {
		return id[:prefix] + "|" + id[prefix:]
	})
	if got := highlight("ABC123"); got != "AB|C123" {
		t.Fatalf("expected case-insensitive lookup, got %q", got)
	}
	if got := highlight(""); got != "" {
		t.Fatalf("expected empty id unchanged, got %q", got)
	}
}

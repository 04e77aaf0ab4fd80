package main

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/tasks/task"
)

func TestHasChangedFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "example"}
	cmd.Flags().String("title", "", "")
	cmd.Flags().String("description", "", "")

	if hasChangedFlags(cmd, "title", "description") {
		t.Fatal("expected no changed flags")
	}

	if err := cmd.Flags().Set("description", "hello"); err != nil {
		t.Fatalf("set description: %v", err)
	}

	if !hasChangedFlags(cmd, "title", "description") {
		t.Fatal("expected changed flags")
	}
}

func TestResolveDescriptionFromStdin(t *testing.T) {
	got, err := resolveDescriptionFromStdin("-", strings.NewReader("line one\nline two\r\n"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "line one\nline two" {
		t.Fatalf("unexpected description %q", got)
	}

	got, err = resolveDescriptionFromStdin("inline", strings.NewReader("ignored"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "inline" {
		t.Fatalf("expected inline description, got %q", got)
	}
}

func TestParseEstimate(t *testing.T) {
	cases := []struct {
		input string
		want  task.Minutes
	}{
		{input: "90", want: 90},
		{input: " 45 ", want: 45},
		{input: "1h30m", want: 90},
		{input: "2h", want: 120},
		{input: "0", want: 0},
	}
	for _, tc := range cases {
		got, err := parseEstimate(tc.input)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: expected %d, got %d", tc.input, tc.want, got)
		}
	}

	if _, err := parseEstimate("-5"); !errors.Is(err, task.ErrNegativeEstimate) {
		t.Fatalf("expected ErrNegativeEstimate, got %v", err)
	}
	if _, err := parseEstimate("soon"); err == nil {
		t.Fatal("expected error for invalid estimate")
	}
}

func TestParseDueIn(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	got, err := parseDueIn("3h", now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != "2026-03-10T13:00:00Z" {
		t.Fatalf("unexpected due %q", got)
	}

	got, err = parseDueIn("2d", now)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != "2026-03-12T10:00:00Z" {
		t.Fatalf("unexpected due %q", got)
	}

	if _, err := parseDueIn("later", now); !errors.Is(err, task.ErrInvalidDue) {
		t.Fatalf("expected ErrInvalidDue, got %v", err)
	}
}

func TestDueFlagRejectsBoth(t *testing.T) {
	cmd := &cobra.Command{Use: "example"}
	cmd.Flags().String("due", "", "")
	cmd.Flags().String("due-in", "", "")
	_ = cmd.Flags().Set("due", "2026-03-11")
	_ = cmd.Flags().Set("due-in", "3h")

	if _, _, err := dueFlag(cmd, "2026-03-11", "3h", time.Now()); err == nil {
		t.Fatal("expected --due and --due-in to conflict")
	}
}

func TestExpandIDArgs(t *testing.T) {
	got := expandIDArgs([]string{"abc,def", "ghi", " jkl "})
	want := []string{"abc", "def", "ghi", "jkl"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestShouldUseEditEditor(t *testing.T) {
	cases := []struct {
		name                                  string
		hasFlags, force, noEdit, interactive bool
		want                                  bool
	}{
		{name: "force", force: true, want: true},
		{name: "no-edit wins over interactive", noEdit: true, interactive: true, want: false},
		{name: "interactive without flags", interactive: true, want: true},
		{name: "interactive with flags", hasFlags: true, interactive: true, want: false},
		{name: "not interactive", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := shouldUseEditEditor(tc.hasFlags, tc.force, tc.noEdit, tc.interactive)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

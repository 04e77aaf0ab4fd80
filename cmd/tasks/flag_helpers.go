package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/tasks/task"
)

func hasChangedFlags(cmd *cobra.Command, flags ...string) bool {
	for _, flag := range flags {
		if cmd.Flags().Changed(flag) {
			return true
		}
	}
	return false
}

func resolveDescriptionFromStdin(description string, reader io.Reader) (string, error) {
	if description != "-" {
		return description, nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}
	return strings.TrimRight(string(input), "\r\n"), nil
}

// parseEstimate accepts whole minutes ("90") or a duration ("1h30m").
func parseEstimate(value string) (task.Minutes, error) {
	value = strings.TrimSpace(value)
	if minutes, err := strconv.Atoi(value); err == nil {
		if minutes < 0 {
			return 0, fmt.Errorf("%w: got %d", task.ErrNegativeEstimate, minutes)
		}
		return task.Minutes(minutes), nil
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid estimate %q: use minutes or a duration like 1h30m", value)
	}
	if duration < 0 {
		return 0, fmt.Errorf("%w: got %s", task.ErrNegativeEstimate, value)
	}
	return task.Minutes(duration / time.Minute), nil
}

// parseDueIn turns an offset like "3h", "90m" or "2d" into a due instant
// relative to now.
func parseDueIn(value string, now time.Time) (string, error) {
	value = strings.TrimSpace(value)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return "", fmt.Errorf("%w: --due-in %q", task.ErrInvalidDue, value)
		}
		return task.FormatExpireAt(now.AddDate(0, 0, n)), nil
	}

	offset, err := time.ParseDuration(value)
	if err != nil {
		return "", fmt.Errorf("%w: --due-in %q", task.ErrInvalidDue, value)
	}
	return task.FormatExpireAt(now.Add(offset)), nil
}

// dueFlag resolves the --due and --due-in flags into an expireAt value.
// ok is false when neither flag was given.
func dueFlag(cmd *cobra.Command, due, dueIn string, now time.Time) (value string, ok bool, err error) {
	if cmd.Flags().Changed("due") && cmd.Flags().Changed("due-in") {
		return "", false, fmt.Errorf("--due and --due-in are mutually exclusive")
	}
	if cmd.Flags().Changed("due-in") {
		value, err := parseDueIn(dueIn, now)
		return value, err == nil, err
	}
	if cmd.Flags().Changed("due") {
		return due, true, nil
	}
	return "", false, nil
}

// expandIDArgs accepts IDs as separate arguments or comma-separated.
func expandIDArgs(args []string) []string {
	return parseIDList(strings.Join(args, ","))
}

func parseIDList(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/amonks/tasks/task"
)

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func emptyListMessage(total int, filter task.Filter, pending bool) string {
	if total == 0 {
		return "No tasks found."
	}
	if filter != "" && filter != task.FilterAll {
		return fmt.Sprintf("No tasks found with priority %s.", filter)
	}
	if pending {
		return "No pending tasks found."
	}
	return "No tasks found."
}

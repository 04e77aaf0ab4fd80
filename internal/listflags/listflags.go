// Package listflags defines flags shared by commands that list tasks.
package listflags

import (
	"github.com/spf13/cobra"

	"github.com/amonks/tasks/internal/validation"
	"github.com/amonks/tasks/task"
)

// AddFilterFlag adds the --filter priority tab flag. An empty value means the
// configured default.
func AddFilterFlag(cmd *cobra.Command, target *string) {
	usage := "Show only tasks with this effective priority (" + validation.FormatValidValues(task.ValidFilters()) + ")"
	cmd.Flags().StringVarP(target, "filter", "f", "", usage)
}

// AddPendingFlag adds the --pending flag that hides completed tasks.
func AddPendingFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, "pending", false, "Hide completed tasks")
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/amonks/tasks/internal/tasktui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and update tasks interactively",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	order, err := ordering()
	if err != nil {
		return err
	}

	storage, err := openStorage()
	if err != nil {
		return err
	}
	defer storage.Close()

	return tasktui.Run(cmd.Context(), tasktui.Options{
		Storage:  storage,
		Ordering: order,
		Filter:   app.cfg.List.Filter,
		Now:      clock(),
		Logger:   app.logger,
	})
}

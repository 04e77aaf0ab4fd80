package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/tasks/internal/validation"
	"github.com/amonks/tasks/task"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every task as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var (
	exportFormat string
	exportOutput string
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Merge tasks from a JSON or YAML export",
	Long: `Merge tasks from a JSON or YAML export.

Records are matched by ID; an imported record replaces the stored task
with the same ID and records without an ID are added as new tasks. Every
record is validated and its priority recomputed before anything is saved.
Reads stdin when file is omitted or "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

var importFormat string

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)

	formats := validation.FormatValidValues(task.ValidFormats())
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Output format ("+formats+"; default from -o extension, else json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	importCmd.Flags().StringVar(&importFormat, "format", "", "Input format ("+formats+"; default from file extension, else json)")
}

// formatFor picks the explicit format, falling back to the file extension.
func formatFor(explicit, path string) (task.Format, error) {
	if explicit == "" && path != "" && path != "-" {
		explicit = strings.TrimPrefix(filepath.Ext(path), ".")
		if _, err := task.ParseFormat(explicit); err != nil {
			explicit = ""
		}
	}
	return task.ParseFormat(explicit)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := formatFor(exportFormat, exportOutput)
	if err != nil {
		return err
	}

	storage, err := openStorage()
	if err != nil {
		return err
	}
	defer storage.Close()

	tasks, err := storage.LoadStrict(cmd.Context())
	if err != nil {
		return err
	}

	if exportOutput == "" || exportOutput == "-" {
		return task.Encode(cmd.OutOrStdout(), tasks, format)
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("create %s: %w", exportOutput, err)
	}
	if err := task.Encode(f, tasks, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", exportOutput, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", len(tasks), exportOutput)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	format, err := formatFor(importFormat, path)
	if err != nil {
		return err
	}

	input, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	records, err := task.Decode(input, format)
	input.Close()
	if err != nil {
		return err
	}

	storage, err := openStorage()
	if err != nil {
		return err
	}
	defer storage.Close()

	var prepared []task.Task
	var added, replaced int
	_, err = storage.Update(cmd.Context(), func(tasks []task.Task) ([]task.Task, error) {
		var err error
		prepared, err = task.PrepareImport(records, app.now, task.NewIDFunc(tasks, records))
		if err != nil {
			return nil, err
		}
		merged := task.Merge(tasks, prepared)
		added = len(merged) - len(tasks)
		replaced = len(prepared) - added
		return merged, nil
	})
	if err != nil {
		return err
	}

	app.logger.Info().Int("added", added).Int("replaced", replaced).Str("source", path).Msg("imported tasks")
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks (%d new, %d replaced)\n", len(prepared), added, replaced)
	return nil
}

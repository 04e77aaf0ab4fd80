package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amonks/tasks/internal/ui"
	"github.com/amonks/tasks/task"
)

var scoreCmd = &cobra.Command{
	Use:   "score <title>",
	Short: "Show how a task would be scored, without saving it",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

var (
	scoreDue      string
	scoreDueIn    string
	scoreEstimate string
	scoreJSON     bool
)

func init() {
	rootCmd.AddCommand(scoreCmd)
	addTaskFieldFlagAliases(scoreCmd)

	scoreCmd.Flags().StringVar(&scoreDue, "due", "", "Due date")
	scoreCmd.Flags().StringVar(&scoreDueIn, "due-in", "", "Due after an offset from now (e.g. 3h, 2d)")
	scoreCmd.Flags().StringVar(&scoreEstimate, "estimate", "", "Estimated effort in minutes or as a duration")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Output as JSON")
}

func runScore(cmd *cobra.Command, args []string) error {
	var expireAt *string
	due, ok, err := dueFlag(cmd, scoreDue, scoreDueIn, app.now)
	if err != nil {
		return err
	}
	if ok {
		if _, parsed := task.ParseExpireAt(due, app.now.Location()); !parsed {
			return fmt.Errorf("%w: %q", task.ErrInvalidDue, due)
		}
		expireAt = &due
	}

	var estimate *task.Minutes
	if cmd.Flags().Changed("estimate") {
		minutes, err := parseEstimate(scoreEstimate)
		if err != nil {
			return err
		}
		estimate = &minutes
	}

	breakdown := task.Score(args[0], expireAt, estimate, app.now)
	out := cmd.OutOrStdout()
	if scoreJSON {
		return encodeJSON(out, breakdown)
	}

	palette := ui.PaletteFor(out)
	fmt.Fprint(out, formatScoreBreakdown(breakdown, palette))
	return nil
}

func formatScoreBreakdown(b task.ScoreBreakdown, palette ui.Palette) string {
	keyword := palette.Muted("none")
	if b.Keyword != "" {
		keyword = b.Keyword
	}
	builder := ui.NewTableBuilder([]string{"SIGNAL", "VALUE", "SCORE"}, 4)
	builder.AddRow("keyword", keyword, fmt.Sprintf("+%d", b.KeywordScore))
	builder.AddRow("due", string(b.Due), fmt.Sprintf("+%d", b.DueScore))
	builder.AddRow("effort", "", fmt.Sprintf("+%d", b.EffortScore))
	builder.AddRow("total", palette.Badge(b.Priority), fmt.Sprintf("%d", b.Total))
	return builder.String()
}

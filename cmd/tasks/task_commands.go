package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/tasks/internal/editor"
	"github.com/amonks/tasks/internal/listflags"
	"github.com/amonks/tasks/internal/ui"
	"github.com/amonks/tasks/task"
)

// tasks add
var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task",
	Long: `Add a task.

By default, opens $VISUAL or $EDITOR to edit a TOML representation of the task
when running interactively. Use --no-edit to skip the editor, or
--edit to force opening the editor even when not interactive.

The priority is computed from the title, due date and estimate. Use
--priority to pin it instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

var (
	addDescription string
	addDue         string
	addDueIn       string
	addEstimate    string
	addPriority    string
	addEdit        bool
	addNoEdit      bool
)

// tasks edit
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task",
	Long: `Edit a task.

By default, opens $VISUAL or $EDITOR when running interactively and no field flags
are provided. Use --no-edit to skip the editor, or --edit to force it.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editTitle         string
	editDescription   string
	editDue           string
	editDueIn         string
	editClearDue      bool
	editEstimate      string
	editPriority      string
	editClearPriority bool
	editEdit          bool
	editNoEdit        bool
)

// tasks done
var doneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Toggle completion of one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDone,
}

// tasks rm
var rmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete"},
	Short:   "Delete one or more tasks",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRemove,
}

// tasks show
var showCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

var showJSON bool

// tasks list
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks by priority",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var (
	listFilter  string
	listPending bool
	listJSON    bool
)

func init() {
	rootCmd.AddCommand(addCmd, editCmd, doneCmd, rmCmd, showCmd, listCmd)
	addTaskFieldFlagAliases(addCmd, editCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Description (use '-' to read from stdin)")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC 3339)")
	addCmd.Flags().StringVar(&addDueIn, "due-in", "", "Due after an offset from now (e.g. 3h, 90m, 2d)")
	addCmd.Flags().StringVar(&addEstimate, "estimate", "", "Estimated effort in minutes or as a duration (e.g. 90, 1h30m)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Pin the priority (high, medium, low)")
	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	addCmd.Flags().BoolVar(&addNoEdit, "no-edit", false, "Do not open $EDITOR")

	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "New description (use '-' to read from stdin)")
	editCmd.Flags().StringVar(&editDue, "due", "", "New due date")
	editCmd.Flags().StringVar(&editDueIn, "due-in", "", "Due after an offset from now (e.g. 3h, 90m, 2d)")
	editCmd.Flags().BoolVar(&editClearDue, "clear-due", false, "Remove the due date")
	editCmd.Flags().StringVar(&editEstimate, "estimate", "", "New estimate in minutes or as a duration (0 clears)")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "Pin the priority (high, medium, low)")
	editCmd.Flags().BoolVar(&editClearPriority, "clear-priority", false, "Remove a pinned priority")
	editCmd.Flags().BoolVarP(&editEdit, "edit", "e", false, "Open $EDITOR (default if interactive and no flags)")
	editCmd.Flags().BoolVar(&editNoEdit, "no-edit", false, "Do not open $EDITOR")

	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	listflags.AddFilterFlag(listCmd, &listFilter)
	listflags.AddPendingFlag(listCmd, &listPending)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("description") {
		desc, err := resolveDescriptionFromStdin(addDescription, cmd.InOrStdin())
		if err != nil {
			return err
		}
		addDescription = desc
	}

	var draft task.Draft
	if len(args) > 0 {
		draft.Title = args[0]
	}
	if err := applyDraftFlags(cmd, &draft, draftFlags{
		description: addDescription,
		due:         addDue,
		dueIn:       addDueIn,
		estimate:    addEstimate,
		priority:    addPriority,
	}); err != nil {
		return err
	}

	useEditor := addEdit || (!addNoEdit && editor.IsInteractive())
	if useEditor {
		data := editorDataFromDraft(draft)
		data.IsUpdate = false
		parsed, err := editor.EditTaskWithData(data)
		if err != nil {
			return err
		}
		parsed.ApplyTo(&draft)
	} else if strings.TrimSpace(draft.Title) == "" {
		return fmt.Errorf("title is required (use --edit to open editor)")
	}

	storage, err := openStorage()
	if err != nil {
		return err
	}
	defer storage.Close()

	var created task.Task
	saved, err := storage.Update(cmd.Context(), func(tasks []task.Task) ([]task.Task, error) {
		t, err := task.Prepare(draft, app.now, task.NewIDFunc(tasks))
		if err != nil {
			return nil, err
		}
		created = t
		return task.Upsert(tasks, t), nil
	})
	if err != nil {
		return err
	}

	palette := ui.PaletteFor(cmd.OutOrStdout())
	highlight := logHighlighter(task.NewIDIndex(saved).PrefixLengths(), palette.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s [%s]\n",
		highlight(created.ID), created.Title, palette.Badge(created.Effective(app.now)))
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("description") {
		desc, err := resolveDescriptionFromStdin(editDescription, cmd.InOrStdin())
		if err != nil {
			return err
		}
		editDescription = desc
	}

	storage, err := openStorage()
	if err != nil {
		return err
	}
	defer storage.Close()

	hasFlags := hasChangedFlags(cmd, "title", "description", "due", "due-in", "clear-due",
		"estimate", "priority", "clear-priority")
	useEditor := shouldUseEditEditor(hasFlags, editEdit, editNoEdit, editor.IsInteractive())

	// The editor session runs outside the store lock; its result is applied
	// to whatever is stored once it closes.
	var parsed *editor.ParsedTask
	if useEditor {
		current, err := storage.LoadStrict(cmd.Context())
		if err != nil {
			return err
		}
		existing, err := findByPrefix(current, args[0])
		if err != nil {
			return err
		}
		draft := task.DraftFrom(existing)
		if err := applyEditFlags(cmd, &draft); err != nil {
			return err
		}
		data := editorDataFromDraft(draft)
		parsed, err = editor.EditTaskWithData(data)
		if err != nil {
			return err
		}
	}

	var updated task.Task
	saved, err := storage.Update(cmd.Context(), func(tasks []task.Task) ([]task.Task, error) {
		existing, err := findByPrefix(tasks, args[0])
		if err != nil {
			return nil, err
		}
		draft := task.DraftFrom(existing)
		if parsed != nil {
			parsed.ApplyTo(&draft)
		} else if err := applyEditFlags(cmd, &draft); err != nil {
			return nil, err
		}
		t, err := task.Prepare(draft, app.now, task.NewIDFunc(tasks))
		if err != nil {
			return nil, err
		}
		updated = t
		return task.Upsert(tasks, t), nil
	})
	if err != nil {
		return err
	}

	palette := ui.PaletteFor(cmd.OutOrStdout())
	highlight := logHighlighter(task.NewIDIndex(saved).PrefixLengths(), palette.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s [%s]\n",
		highlight(updated.ID), updated.Title, palette.Badge(updated.Effective(app.now)))
	return nil
}

func shouldUseEditEditor(hasFlags, forceEdit, noEdit, interactive bool) bool {
	if forceEdit {
		return true
	}
	if noEdit {
		return false
	}
	return !hasFlags && interactive
}

func applyEditFlags(cmd *cobra.Command, draft *task.Draft) error {
	if cmd.Flags().Changed("title") {
		draft.Title = editTitle
	}
	if cmd.Flags().Changed("clear-due") {
		if hasChangedFlags(cmd, "due", "due-in") {
			return fmt.Errorf("--clear-due cannot be combined with --due or --due-in")
		}
		draft.ExpireAt = nil
	}
	if cmd.Flags().Changed("clear-priority") {
		if cmd.Flags().Changed("priority") {
			return fmt.Errorf("--clear-priority cannot be combined with --priority")
		}
		draft.PriorityOverride = nil
	}
	return applyDraftFlags(cmd, draft, draftFlags{
		description: editDescription,
		due:         editDue,
		dueIn:       editDueIn,
		estimate:    editEstimate,
		priority:    editPriority,
	})
}

type draftFlags struct {
	description string
	due         string
	dueIn       string
	estimate    string
	priority    string
}

// applyDraftFlags copies the changed field flags onto draft.
func applyDraftFlags(cmd *cobra.Command, draft *task.Draft, flags draftFlags) error {
	if cmd.Flags().Changed("description") {
		draft.Description = task.StringPtr(flags.description)
	}

	due, ok, err := dueFlag(cmd, flags.due, flags.dueIn, app.now)
	if err != nil {
		return err
	}
	if ok {
		draft.ExpireAt = task.StringPtr(due)
	}

	if cmd.Flags().Changed("estimate") {
		minutes, err := parseEstimate(flags.estimate)
		if err != nil {
			return err
		}
		draft.EstimatedMinutes = nil
		if minutes > 0 {
			draft.EstimatedMinutes = &minutes
		}
	}

	if cmd.Flags().Changed("priority") {
		p, err := task.ParsePriority(flags.priority)
		if err != nil {
			return err
		}
		draft.PriorityOverride = &p
	}
	return nil
}

func editorDataFromDraft(draft task.Draft) editor.TaskData {
	data := editor.DataFromTask(task.Task{
		ID:               draft.ID,
		Title:            draft.Title,
		Description:      draft.Description,
		ExpireAt:         draft.ExpireAt,
		EstimatedMinutes: draft.EstimatedMinutes,
		Completed:        draft.Completed,
		PriorityOverride: draft.PriorityOverride,
	}, app.now.Location())
	data.IsUpdate = draft.ID != ""
	return data
}

func runDone(cmd *cobra.Command, args []string) error {
	storage, err := openStorage()
	if err != nil {
		return err
	}
	defer storage.Close()

	var toggled []string
	saved, err := storage.Update(cmd.Context(), func(tasks []task.Task) ([]task.Task, error) {
		ids, err := task.NewIDIndex(tasks).ResolveAll(expandIDArgs(args))
		if err != nil {
			return nil, err
		}
		toggled = ids
		for _, id := range ids {
			tasks, err = task.Toggle(tasks, id)
			if err != nil {
				return nil, err
			}
		}
		return tasks, nil
	})
	if err != nil {
		return err
	}

	palette := ui.PaletteFor(cmd.OutOrStdout())
	highlight := logHighlighter(task.NewIDIndex(saved).PrefixLengths(), palette.ID)
	for _, id := range toggled {
		t, _ := task.Find(saved, id)
		verb := "Reopened"
		if t.Completed {
			verb = "Completed"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s task %s: %s\n", verb, highlight(t.ID), t.Title)
	}
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	storage, err := openStorage()
	if err != nil {
		return err
	}
	defer storage.Close()

	var removed []task.Task
	var prefixLengths map[string]int
	_, err = storage.Update(cmd.Context(), func(tasks []task.Task) ([]task.Task, error) {
		index := task.NewIDIndex(tasks)
		ids, err := index.ResolveAll(expandIDArgs(args))
		if err != nil {
			return nil, err
		}
		prefixLengths = index.PrefixLengths()
		for _, id := range ids {
			t, found := task.Find(tasks, id)
			if !found {
				continue
			}
			tasks, err = task.Remove(tasks, id)
			if err != nil {
				return nil, err
			}
			removed = append(removed, t)
		}
		return tasks, nil
	})
	if err != nil {
		return err
	}

	palette := ui.PaletteFor(cmd.OutOrStdout())
	highlight := logHighlighter(prefixLengths, palette.ID)
	for _, t := range removed {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s: %s\n", highlight(t.ID), t.Title)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	storage, err := openStorage()
	if err != nil {
		return err
	}
	defer storage.Close()

	tasks, err := storage.LoadStrict(cmd.Context())
	if err != nil {
		return err
	}
	index := task.NewIDIndex(tasks)
	ids, err := index.ResolveAll(expandIDArgs(args))
	if err != nil {
		return err
	}

	shown := make([]task.Task, 0, len(ids))
	for _, id := range ids {
		t, _ := task.Find(tasks, id)
		shown = append(shown, t)
	}
	resolved := task.Resolve(shown, app.now)

	if showJSON {
		return encodeJSON(cmd.OutOrStdout(), resolved)
	}

	out := cmd.OutOrStdout()
	palette := ui.PaletteFor(out)
	prefixLengths := index.PrefixLengths()
	for i, r := range resolved {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, formatTaskDetail(r, app.now, palette, prefixLengths))
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	filterValue := app.cfg.List.Filter
	if cmd.Flags().Changed("filter") {
		parsed, err := task.ParseFilter(listFilter)
		if err != nil {
			return err
		}
		filterValue = parsed
	}

	order, err := ordering()
	if err != nil {
		return err
	}

	storage, err := openStorage()
	if err != nil {
		return err
	}
	defer storage.Close()

	tasks := storage.Load(cmd.Context())
	view := task.View(tasks, app.now, order, task.ViewOptions{
		Filter:        filterValue,
		HideCompleted: listPending,
	})
	app.logger.Debug().Int("total", len(tasks)).Int("shown", len(view)).Str("filter", string(filterValue)).Msg("listed tasks")

	out := cmd.OutOrStdout()
	if listJSON {
		return encodeJSON(out, view)
	}
	if len(view) == 0 {
		fmt.Fprintln(out, emptyListMessage(len(tasks), filterValue, listPending))
		return nil
	}

	palette := ui.PaletteFor(out)
	fmt.Fprint(out, formatTaskTable(view, task.NewIDIndex(tasks).PrefixLengths(), palette, app.now))
	return nil
}

// findByPrefix resolves an ID prefix against tasks.
func findByPrefix(tasks []task.Task, prefix string) (task.Task, error) {
	id, err := task.NewIDIndex(tasks).Resolve(prefix)
	if err != nil {
		return task.Task{}, err
	}
	t, _ := task.Find(tasks, id)
	return t, nil
}

// openInput returns stdin for "-" and the named file otherwise.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

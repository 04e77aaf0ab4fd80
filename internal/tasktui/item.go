package tasktui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	internalstrings "github.com/amonks/tasks/internal/strings"
	"github.com/amonks/tasks/internal/ui"
	"github.com/amonks/tasks/task"
)

type taskItem struct {
	task task.Resolved
	loc  *time.Location
}

func (item taskItem) FilterValue() string {
	return item.task.Title
}

type taskItemDelegate struct {
	palette ui.Palette
}

func newTaskItemDelegate() taskItemDelegate {
	return taskItemDelegate{palette: ui.NewPalette(lipgloss.DefaultRenderer())}
}

func (d taskItemDelegate) Height() int                             { return 1 }
func (d taskItemDelegate) Spacing() int                            { return 0 }
func (d taskItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(taskItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	prefix := "  "
	if selected {
		prefix = "> "
	}

	title := formatTaskTitle(item, max(m.Width()-30, 8))
	if item.task.Completed && !selected {
		title = d.palette.Done(title)
	}
	due := fmt.Sprintf("%-16s", formatItemDue(item))
	if !selected {
		if _, ok := item.task.DueAt(); !ok {
			due = d.palette.Muted(due)
		}
	}

	badge := strings.ToUpper(string(item.task.Effective))
	if !selected {
		badge = d.palette.Badge(item.task.Effective)
	}
	badge += strings.Repeat(" ", len("MEDIUM")-len(item.task.Effective))

	line := fmt.Sprintf("%s%s %s  %s  %s", prefix, doneMarker(item.task.Completed), badge, due, title)
	if selected {
		line = selectedStyle.Render(line)
	}
	fmt.Fprint(w, line)
}

func doneMarker(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func formatItemDue(item taskItem) string {
	due, ok := item.task.DueAt()
	return ui.FormatDue(due, ok, item.loc)
}

func formatTaskTitle(item taskItem, width int) string {
	title := internalstrings.NormalizeWhitespace(item.task.Title)
	if width <= 0 {
		return title
	}
	return truncate.StringWithTail(title, uint(width), "...")
}

// Package tasktui implements the interactive task list.
package tasktui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	internalstrings "github.com/amonks/tasks/internal/strings"
	"github.com/amonks/tasks/task"
)

// Options configures the interactive list.
type Options struct {
	Storage  *task.Storage
	Ordering *task.Ordering

	// Filter is the initially selected tab.
	Filter task.Filter

	// Now reports the instant priorities are resolved against.
	Now func() time.Time

	Logger zerolog.Logger
}

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalDelete
)

type filterTab struct {
	filter task.Filter
	label  string
}

var filterTabs = []filterTab{
	{filter: task.FilterAll, label: "Todas"},
	{filter: task.Filter(task.PriorityHigh), label: "Alta"},
	{filter: task.Filter(task.PriorityMedium), label: "Média"},
	{filter: task.Filter(task.PriorityLow), label: "Baixa"},
}

type model struct {
	ctx         context.Context
	opts        Options
	width       int
	height      int
	activeTab   int
	taskList    list.Model
	tasks       []task.Task
	loaded      bool
	modal       confirmModal
	status      string
	statusLevel statusLevel
	selectedID  string
}

type confirmModal struct {
	kind        modalKind
	message     string
	confirmText string
	cancelText  string
	selected    int
	taskID      string
}

type tasksLoadedMsg struct {
	tasks []task.Task
}

type tasksSavedMsg struct {
	tasks  []task.Task
	status string
	err    error
}

// Run starts the interactive list and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Storage == nil {
		return fmt.Errorf("task storage is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func newModel(ctx context.Context, opts Options) model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Ordering == nil {
		opts.Ordering = task.NewOrdering(task.DefaultLocale)
	}

	taskList := list.New(nil, newTaskItemDelegate(), 0, 0)
	taskList.Title = "Tarefas"
	taskList.SetShowStatusBar(false)
	taskList.SetFilteringEnabled(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(false)

	activeTab := 0
	for i, tab := range filterTabs {
		if tab.filter == opts.Filter {
			activeTab = i
		}
	}

	return model{
		ctx:       ctx,
		opts:      opts,
		activeTab: activeTab,
		taskList:  taskList,
		modal:     confirmModal{kind: modalNone},
	}
}

func (m model) Init() tea.Cmd {
	return m.loadTasksCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.modal.kind != modalNone {
		return m.updateModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		updated, cmd, handled := m.handleKey(msg)
		if handled {
			return updated, cmd
		}
		m = updated
	case tasksLoadedMsg:
		m.setTasks(msg.tasks)
		return m, nil
	case tasksSavedMsg:
		return m.handleSaved(msg)
	}

	var cmd tea.Cmd
	m.taskList, cmd = m.taskList.Update(msg)
	m.updateSelection()
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading tasks..."
	}
	contentHeight := max(m.height-3, 1)

	listContent := m.taskList.View()
	if m.loaded && len(m.taskList.Items()) == 0 {
		listContent = valueMuted.Render(m.emptyMessage())
	}
	pane := paneStyle.Width(max(m.width-2, 0)).Height(max(contentHeight-2, 0)).Render(listContent)

	view := strings.Join([]string{m.renderTabs(), m.renderHelpLine(), pane, m.renderStatusLine()}, "\n")
	if m.modal.kind != modalNone {
		view = m.renderModalOverlay(view)
	}
	return view
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd, bool) {
	switch msg.String() {
	case "?":
		m.modal = confirmModal{kind: modalHelp}
		return m, nil, true
	case "ctrl+c", "q":
		return m, tea.Quit, true
	case "tab", "]":
		return m.activateTab(m.activeTab + 1), nil, true
	case "shift+tab", "backtab", "[":
		return m.activateTab(m.activeTab - 1), nil, true
	case "1", "2", "3", "4":
		return m.activateTab(int(msg.String()[0] - '1')), nil, true
	case " ", "space", "x":
		item, ok := m.currentItem()
		if !ok {
			return m, nil, true
		}
		return m, m.toggleCmd(item.task.ID), true
	case "d", "delete":
		return m.promptDelete(), nil, true
	case "r":
		m.setStatus("Reloading", statusInfo)
		return m, m.loadTasksCmd(), true
	}
	return m, nil, false
}

func (m model) activateTab(index int) model {
	n := len(filterTabs)
	index = ((index % n) + n) % n
	if index == m.activeTab {
		return m
	}
	m.activeTab = index
	m.refreshItems()
	return m
}

func (m model) currentFilter() task.Filter {
	return filterTabs[m.activeTab].filter
}

func (m model) promptDelete() model {
	item, ok := m.currentItem()
	if !ok {
		m.setStatus("No task selected", statusError)
		return m
	}
	m.modal = confirmModal{
		kind:        modalDelete,
		message:     fmt.Sprintf("Excluir %q?", item.task.Title),
		confirmText: "Excluir",
		cancelText:  "Cancelar",
		selected:    1,
		taskID:      item.task.ID,
	}
	return m
}

func (m model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.modal.kind == modalHelp {
		switch key.String() {
		case "?", "esc":
			m.modal = confirmModal{kind: modalNone}
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch key.String() {
	case "left", "right", "tab", "shift+tab", "backtab", "h", "l":
		m.modal.selected = 1 - m.modal.selected
		return m, nil
	case "enter":
		return m.resolveModal(m.modal.selected == 0)
	case "y":
		return m.resolveModal(true)
	case "esc", "n":
		return m.resolveModal(false)
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) resolveModal(confirm bool) (tea.Model, tea.Cmd) {
	modal := m.modal
	m.modal = confirmModal{kind: modalNone}
	if !confirm {
		return m, nil
	}
	if modal.kind == modalDelete {
		return m, m.deleteCmd(modal.taskID)
	}
	return m, nil
}

func (m model) handleSaved(msg tasksSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.opts.Logger.Warn().Err(msg.err).Msg("failed to save tasks")
		m.setStatus(fmt.Sprintf("Save failed: %v", msg.err), statusError)
		return m, nil
	}
	m.setTasks(msg.tasks)
	m.setStatus(msg.status, statusInfo)
	return m, nil
}

// setTasks replaces the collection and rebuilds the visible rows.
func (m *model) setTasks(tasks []task.Task) {
	m.tasks = tasks
	m.loaded = true
	m.refreshItems()
}

// refreshItems re-resolves priorities against the clock and keeps the
// selection on the same task when it is still visible.
func (m *model) refreshItems() {
	now := m.opts.Now()
	view := task.View(m.tasks, now, m.opts.Ordering, task.ViewOptions{Filter: m.currentFilter()})

	items := make([]list.Item, 0, len(view))
	selected := 0
	for i, r := range view {
		items = append(items, taskItem{task: r, loc: now.Location()})
		if r.ID == m.selectedID {
			selected = i
		}
	}
	m.taskList.SetItems(items)
	if len(items) > 0 {
		m.taskList.Select(selected)
	}
	m.updateSelection()
}

func (m *model) updateSelection() {
	if item, ok := m.currentItem(); ok {
		m.selectedID = item.task.ID
	}
}

func (m model) currentItem() (taskItem, bool) {
	item := m.taskList.SelectedItem()
	if item == nil {
		return taskItem{}, false
	}
	current, ok := item.(taskItem)
	return current, ok
}

func (m model) emptyMessage() string {
	if len(m.tasks) == 0 {
		return "Nenhuma tarefa."
	}
	return fmt.Sprintf("Nenhuma tarefa em %s.", filterTabs[m.activeTab].label)
}

func (m *model) resize() {
	contentHeight := max(m.height-3, 1)
	m.taskList.SetSize(max(m.width-6, 1), max(contentHeight-2, 1))
}

func (m model) renderTabs() string {
	parts := make([]string, 0, len(filterTabs))
	for i, tab := range filterTabs {
		style := tabInactiveStyle
		if i == m.activeTab {
			style = tabActiveStyle
		}
		label := fmt.Sprintf("[%d] %s (%d)", i+1, tab.label, m.countFor(tab.filter))
		parts = append(parts, style.Render(label))
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	helpHint := valueMuted.Render("Press ? for help")
	spacer := strings.Repeat(" ", max(m.width-lipgloss.Width(content)-lipgloss.Width(helpHint), 1))
	return tabBarStyle.Width(m.width).Render(content + spacer + helpHint)
}

func (m model) countFor(filter task.Filter) int {
	count := 0
	for _, r := range task.Resolve(m.tasks, m.opts.Now()) {
		if task.MatchesFilter(r, filter) {
			count++
		}
	}
	return count
}

func (m model) renderHelpLine() string {
	return valueMuted.Render("Keys: up/down move | space done | d delete | 1-4/tab filter | r reload | q quit")
}

func (m model) renderStatusLine() string {
	if internalstrings.IsBlank(m.status) {
		return ""
	}
	style := valueMuted
	switch m.statusLevel {
	case statusError:
		style = statusErrorStyle
	case statusInfo:
		style = statusSuccessStyle
	}
	return style.Render(m.status)
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m model) renderModalOverlay(content string) string {
	if m.modal.kind == modalNone {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
}

func (m model) modalView() string {
	modalStyle := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
	if m.modal.kind == modalHelp {
		return modalStyle.Render(helpContent())
	}

	options := []string{m.modal.confirmText, m.modal.cancelText}
	buttons := make([]string, 0, len(options))
	for i, option := range options {
		style := valueMuted
		if i == m.modal.selected {
			style = selectedBorder
		}
		buttons = append(buttons, style.Render("["+option+"]"))
	}
	content := strings.Join([]string{m.modal.message, "", strings.Join(buttons, " ")}, "\n")
	return modalStyle.Render(content)
}

func helpContent() string {
	sections := []string{
		labelStyle.Render("Global"),
		"q or ctrl+c: quit",
		"1-4 / tab / [ ]: switch priority tab",
		"?: toggle help",
		"",
		labelStyle.Render("Tasks"),
		"up/down or j/k: move selection",
		"space or x: toggle done",
		"d: delete (asks first)",
		"r: reload from storage",
		"",
		labelStyle.Render("Help"),
		"press ? or esc to close",
	}
	return strings.Join(sections, "\n")
}

func (m model) loadTasksCmd() tea.Cmd {
	return func() tea.Msg {
		return tasksLoadedMsg{tasks: m.opts.Storage.Load(m.ctx)}
	}
}

func (m model) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		saved, err := m.opts.Storage.Update(m.ctx, func(tasks []task.Task) ([]task.Task, error) {
			return task.Toggle(tasks, id)
		})
		if err != nil {
			return tasksSavedMsg{err: err}
		}
		status := "Tarefa reaberta"
		if t, ok := task.Find(saved, id); ok && t.Completed {
			status = "Tarefa concluída"
		}
		return tasksSavedMsg{tasks: saved, status: status}
	}
}

func (m model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		saved, err := m.opts.Storage.Update(m.ctx, func(tasks []task.Task) ([]task.Task, error) {
			return task.Remove(tasks, id)
		})
		if err != nil {
			return tasksSavedMsg{err: err}
		}
		return tasksSavedMsg{tasks: saved, status: "Tarefa excluída"}
	}
}

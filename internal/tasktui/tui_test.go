package tasktui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/amonks/tasks/internal/kv"
	"github.com/amonks/tasks/internal/logging"
	"github.com/amonks/tasks/task"
)

var testNow = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

func seedTasks() []task.Task {
	return []task.Task{
		{ID: "bbbb2222", Title: "Ler livro", Priority: task.PriorityLow},
		{ID: "aaaa1111", Title: "Pagar conta", ExpireAt: task.StringPtr("2026-03-10T12:00:00Z"), Priority: task.PriorityHigh},
		{ID: "cccc3333", Title: "Revisar texto", ExpireAt: task.StringPtr("2026-03-11T09:00:00Z"), Priority: task.PriorityMedium},
	}
}

func newTestModel(t *testing.T) (model, *task.Storage) {
	t.Helper()
	useASCIIRenderer(t)

	storage := task.NewStorage(kv.NewMemoryStore(), logging.Nop())
	if err := storage.Save(context.Background(), seedTasks()); err != nil {
		t.Fatalf("seed tasks: %v", err)
	}

	m := newModel(context.Background(), Options{
		Storage: storage,
		Now:     func() time.Time { return testNow },
		Logger:  logging.Nop(),
	})
	m.width = 100
	m.height = 20
	m.resize()

	m = send(t, m, m.Init()())
	return m, storage
}

func useASCIIRenderer(t *testing.T) {
	originalProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(originalProfile)
	})
}

func send(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(model)
}

// press sends a key and runs the resulting command, feeding its message back
// into the model.
func press(t *testing.T, m model, key tea.KeyMsg) model {
	t.Helper()
	updated, cmd := m.Update(key)
	m = updated.(model)
	if cmd == nil {
		return m
	}
	msg := cmd()
	switch msg.(type) {
	case tasksLoadedMsg, tasksSavedMsg:
		return send(t, m, msg)
	}
	return m
}

func runeKey(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func visibleTitles(m model) []string {
	items := m.taskList.Items()
	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.(taskItem).task.Title)
	}
	return titles
}

func TestLoadOrdersByEffectivePriority(t *testing.T) {
	m, _ := newTestModel(t)

	got := strings.Join(visibleTitles(m), ", ")
	want := "Pagar conta, Revisar texto, Ler livro"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestViewShowsTabsBadgesAndDates(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	for _, want := range []string{
		"[1] Todas (3)",
		"[2] Alta (1)",
		"[3] Média (1)",
		"[4] Baixa (1)",
		"10/03/2026 12:00",
		"Sem data",
		"MEDIUM",
		"LOW",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q\n%s", want, view)
		}
	}
}

func TestFilterTabs(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runeKey("2"))
	if got := strings.Join(visibleTitles(m), ", "); got != "Pagar conta" {
		t.Fatalf("expected high tab to show Pagar conta, got %q", got)
	}

	m = press(t, m, runeKey("4"))
	if got := strings.Join(visibleTitles(m), ", "); got != "Ler livro" {
		t.Fatalf("expected low tab to show Ler livro, got %q", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.currentFilter() != task.FilterAll {
		t.Fatalf("expected tab to wrap to all, got %q", m.currentFilter())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.currentFilter() != task.Filter(task.PriorityLow) {
		t.Fatalf("expected shift+tab to wrap to low, got %q", m.currentFilter())
	}
}

func TestInitialFilterSelectsTab(t *testing.T) {
	useASCIIRenderer(t)
	m := newModel(context.Background(), Options{
		Storage: task.NewStorage(kv.NewMemoryStore(), logging.Nop()),
		Filter:  task.Filter(task.PriorityMedium),
	})
	if m.activeTab != 2 {
		t.Fatalf("expected medium tab, got %d", m.activeTab)
	}
}

func TestEmptyTabMessage(t *testing.T) {
	m, storage := newTestModel(t)
	if err := storage.Save(context.Background(), []task.Task{seedTasks()[0]}); err != nil {
		t.Fatalf("save: %v", err)
	}
	m = press(t, m, runeKey("r"))
	m = press(t, m, runeKey("2"))

	if view := m.View(); !strings.Contains(view, "Nenhuma tarefa em Alta.") {
		t.Fatalf("expected empty tab message, got\n%s", view)
	}
}

func TestSpaceTogglesCompletion(t *testing.T) {
	m, storage := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	stored, err := storage.LoadStrict(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, _ := task.Find(stored, "aaaa1111")
	if !got.Completed {
		t.Fatalf("expected selected task to be completed")
	}
	if m.status != "Tarefa concluída" {
		t.Fatalf("expected completion status, got %q", m.status)
	}
	if m.selectedID != "aaaa1111" {
		t.Fatalf("expected selection to stay on toggled task, got %q", m.selectedID)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	stored, _ = storage.LoadStrict(context.Background())
	got, _ = task.Find(stored, "aaaa1111")
	if got.Completed {
		t.Fatalf("expected second toggle to reopen the task")
	}
	if m.status != "Tarefa reaberta" {
		t.Fatalf("expected reopen status, got %q", m.status)
	}
}

func TestDeleteAsksFirst(t *testing.T) {
	m, storage := newTestModel(t)

	m = press(t, m, runeKey("d"))
	if m.modal.kind != modalDelete {
		t.Fatalf("expected delete confirmation")
	}
	if view := m.View(); !strings.Contains(view, `Excluir "Pagar conta"?`) {
		t.Fatalf("expected confirmation in view, got\n%s", view)
	}

	m = press(t, m, runeKey("n"))
	stored, _ := storage.LoadStrict(context.Background())
	if len(stored) != 3 {
		t.Fatalf("expected cancel to keep tasks, got %d", len(stored))
	}

	m = press(t, m, runeKey("d"))
	m = press(t, m, runeKey("y"))
	stored, _ = storage.LoadStrict(context.Background())
	if len(stored) != 2 {
		t.Fatalf("expected delete to remove a task, got %d", len(stored))
	}
	if _, found := task.Find(stored, "aaaa1111"); found {
		t.Fatalf("expected selected task to be deleted")
	}
	if got := strings.Join(visibleTitles(m), ", "); got != "Revisar texto, Ler livro" {
		t.Fatalf("unexpected rows after delete: %q", got)
	}
}

func TestDeleteConfirmDefaultsToCancel(t *testing.T) {
	m, storage := newTestModel(t)

	m = press(t, m, runeKey("d"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	stored, _ := storage.LoadStrict(context.Background())
	if len(stored) != 3 {
		t.Fatalf("expected enter on the default button to cancel, got %d tasks", len(stored))
	}
	if m.modal.kind != modalNone {
		t.Fatalf("expected modal to close")
	}
}

func TestSaveErrorShowsStatus(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, tasksSavedMsg{err: task.ErrTaskNotFound})
	if m.statusLevel != statusError || !strings.Contains(m.status, "task not found") {
		t.Fatalf("expected error status, got %q", m.status)
	}
	if len(visibleTitles(m)) != 3 {
		t.Fatalf("expected rows to be kept on error")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}

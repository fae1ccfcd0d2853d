package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pthm/hxtodo/internal/todo"
)

func newTestModel() (Model, *todo.Store) {
	store := todo.NewStore([]todo.Todo{
		{ID: "t1", Text: "Buy groceries"},
		{ID: "t2", Text: "Walk the dog", Completed: true},
		{ID: "t3", Text: "Read a book"},
	})
	return New(store), store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyCtrlK = tea.KeyMsg{Type: tea.KeyCtrlK}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

// press feeds msgs through Update in order and returns the final model and
// the last command.
func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

// toList leaves the add field so list keys apply.
func toList(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = press(t, m, keyEsc)
	if m.focus != focusList {
		t.Fatalf("focus = %v, want list", m.focus)
	}
	return m
}

func texts(store *todo.Store) string {
	var out []string
	for _, t := range store.List() {
		out = append(out, t.Text)
	}
	return strings.Join(out, "|")
}

func TestAddTodo(t *testing.T) {
	m, store := newTestModel()

	m, _ = press(t, m, runes("Buy milk"))
	if !m.canAdd() {
		t.Error("canAdd() = false with text typed")
	}
	m, _ = press(t, m, keyEnter)

	if got := texts(store); got != "Buy groceries|Walk the dog|Read a book|Buy milk" {
		t.Errorf("texts = %s", got)
	}
	if m.add.Value() != "" {
		t.Errorf("add field not reset: %q", m.add.Value())
	}
	if m.canAdd() {
		t.Error("canAdd() = true after reset")
	}
}

func TestAddBlankIgnored(t *testing.T) {
	m, store := newTestModel()

	m, _ = press(t, m, runes("   "), keyEnter)
	if len(store.List()) != 3 {
		t.Errorf("len = %d, want 3", len(store.List()))
	}
	if m.canAdd() {
		t.Error("canAdd() = true for blank text")
	}
}

func TestCtrlKFocusesAdd(t *testing.T) {
	m, _ := newTestModel()
	m = toList(t, m)

	m, _ = press(t, m, keyCtrlK)
	if m.focus != focusAdd || !m.add.Focused() {
		t.Errorf("focus = %v, add focused = %v", m.focus, m.add.Focused())
	}
}

func TestToggleAndDelete(t *testing.T) {
	m, store := newTestModel()
	m = toList(t, m)

	m, _ = press(t, m, runes("x"))
	if got, _ := store.Get("t1"); !got.Completed {
		t.Error("t1 not toggled")
	}

	m, _ = press(t, m, keyDown, runes("d"))
	if got := texts(store); got != "Buy groceries|Read a book" {
		t.Errorf("texts = %s", got)
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
}

func TestEditFocusArrivesAfterRender(t *testing.T) {
	m, store := newTestModel()
	m = toList(t, m)

	m, cmd := press(t, m, runes("e"))
	if got, _ := store.Get("t1"); !got.Editing {
		t.Fatal("t1 not in edit mode")
	}
	if m.focus == focusEdit {
		t.Fatal("edit focused before the render")
	}
	if cmd == nil {
		t.Fatal("no focus command returned")
	}
	if !strings.Contains(m.View(), "(editing)") {
		t.Errorf("view does not show edit mode:\n%s", m.View())
	}

	m, _ = press(t, m, cmd())
	if m.focus != focusEdit || m.editID != "t1" {
		t.Fatalf("focus = %v editID = %q", m.focus, m.editID)
	}
	if m.edit.Value() != "Buy groceries" {
		t.Errorf("edit value = %q", m.edit.Value())
	}
}

func TestCommitEdit(t *testing.T) {
	tests := []struct {
		name  string
		input func(Model) Model
		want  string
	}{
		{
			name:  "new text",
			input: func(m Model) Model { m.edit.SetValue("New text"); return m },
			want:  "New text",
		},
		{
			name:  "blank keeps text",
			input: func(m Model) Model { m.edit.SetValue("   "); return m },
			want:  "Buy groceries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store := newTestModel()
			m = toList(t, m)
			m, cmd := press(t, m, runes("e"))
			m, _ = press(t, m, cmd())

			m = tt.input(m)
			m, _ = press(t, m, keyEnter)

			got, _ := store.Get("t1")
			if got.Text != tt.want || got.Editing {
				t.Errorf("todo = %+v, want text %q and not editing", got, tt.want)
			}
			if m.focus != focusList {
				t.Errorf("focus = %v, want list", m.focus)
			}
		})
	}
}

func TestCancelEdit(t *testing.T) {
	m, store := newTestModel()
	m = toList(t, m)
	m, cmd := press(t, m, runes("e"))
	m, _ = press(t, m, cmd(), runes(" changed"), keyEsc)

	got, _ := store.Get("t1")
	if got.Editing || got.Text != "Buy groceries" {
		t.Errorf("todo = %+v", got)
	}
	if m.focus != focusList {
		t.Errorf("focus = %v", m.focus)
	}
}

func TestFilters(t *testing.T) {
	m, store := newTestModel()
	m = toList(t, m)

	m, _ = press(t, m, runes("2"))
	if store.Filter() != todo.FilterActive {
		t.Errorf("filter = %s", store.Filter())
	}
	if strings.Contains(m.View(), "Walk the dog") {
		t.Error("completed todo visible under active filter")
	}

	m, _ = press(t, m, keyTab)
	if store.Filter() != todo.FilterCompleted {
		t.Errorf("after tab filter = %s", store.Filter())
	}
	m, _ = press(t, m, keyTab)
	if store.Filter() != todo.FilterAll {
		t.Errorf("after second tab filter = %s", store.Filter())
	}
}

func TestClearCompleted(t *testing.T) {
	m, store := newTestModel()
	m = toList(t, m)

	m, _ = press(t, m, runes("c"))
	if got := texts(store); got != "Buy groceries|Read a book" {
		t.Errorf("texts = %s", got)
	}
	if strings.Contains(m.View(), "c: clear completed") {
		t.Error("clear hint shown with nothing completed")
	}
}

func TestViewShowsRemaining(t *testing.T) {
	m, _ := newTestModel()

	v := m.View()
	for _, want := range []string{"Buy groceries", "Walk the dog", "2 items left", "[x]"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel()
	m = toList(t, m)

	_, cmd := press(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

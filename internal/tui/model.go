// Package tui is a terminal front end over the same todo store the web page
// uses.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pthm/hxtodo/internal/log"
	"github.com/pthm/hxtodo/internal/todo"
)

type focus int

const (
	focusList focus = iota
	focusAdd
	focusEdit
)

// editFocusMsg moves focus to the edit field of a todo. It is delivered as
// a command result, so it arrives after the render that shows the field.
type editFocusMsg struct{ id string }

// Model is the bubbletea model for the todo list.
type Model struct {
	store *todo.Store
	keys  keyMap
	help  help.Model

	add  textinput.Model
	edit textinput.Model

	focus  focus
	cursor int
	editID string
	width  int
}

// New creates a model over store with the add field focused.
func New(store *todo.Store) Model {
	add := textinput.New()
	add.Placeholder = "What needs to be done?"
	add.Prompt = "+ "
	add.Focus()

	edit := textinput.New()
	edit.Prompt = ""

	return Model{
		store: store,
		keys:  defaultKeyMap(),
		help:  help.New(),
		add:   add,
		edit:  edit,
		focus: focusAdd,
	}
}

// Run starts the terminal UI and blocks until the user quits.
func Run(store *todo.Store) error {
	_, err := tea.NewProgram(New(store), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.add.Width = max(msg.Width-8, 10)
		m.edit.Width = max(msg.Width-12, 10)
		return m, nil

	case editFocusMsg:
		return m.focusEdit(msg.id)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.FocusAdd) {
			return m.focusAdd()
		}

		switch m.focus {
		case focusAdd:
			return m.updateAdd(msg)
		case focusEdit:
			return m.updateEdit(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if t, ok := m.store.Add(m.add.Value()); ok {
			log.Debug().Str("id", t.ID).Msg("add todo")
			m.add.Reset()
		}
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.add.Blur()
		m.focus = focusList
		return m, nil
	}

	var cmd tea.Cmd
	m.add, cmd = m.add.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.store.CommitEdit(m.editID, m.edit.Value())
		return m.leaveEdit(), nil
	case key.Matches(msg, m.keys.Cancel):
		m.store.CancelEdit(m.editID)
		return m.leaveEdit(), nil
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.store.Snapshot()
	selected, hasSelected := m.selected(view)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(view.Todos)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if hasSelected {
			m.store.Toggle(selected.ID, !selected.Completed)
		}
	case key.Matches(msg, m.keys.Edit):
		if hasSelected && m.store.BeginEdit(selected.ID) {
			id := selected.ID
			return m, func() tea.Msg { return editFocusMsg{id: id} }
		}
	case key.Matches(msg, m.keys.Delete):
		if hasSelected {
			m.store.Delete(selected.ID)
		}
	case key.Matches(msg, m.keys.Clear):
		m.store.ClearCompleted()
	case key.Matches(msg, m.keys.NextFilter):
		m.store.SetFilter(nextFilter(view.Filter))
	case key.Matches(msg, m.keys.FilterAll):
		m.store.SetFilter(todo.FilterAll)
	case key.Matches(msg, m.keys.FilterActive):
		m.store.SetFilter(todo.FilterActive)
	case key.Matches(msg, m.keys.FilterDone):
		m.store.SetFilter(todo.FilterCompleted)
	}

	m.clampCursor()
	return m, nil
}

func (m Model) focusAdd() (tea.Model, tea.Cmd) {
	m.edit.Blur()
	m.focus = focusAdd
	return m, m.add.Focus()
}

// focusEdit focuses the edit field for id if the todo is still being
// edited.
func (m Model) focusEdit(id string) (tea.Model, tea.Cmd) {
	t, ok := m.store.Get(id)
	if !ok || !t.Editing {
		return m, nil
	}

	m.add.Blur()
	m.editID = id
	m.edit.SetValue(t.Text)
	m.edit.CursorEnd()
	m.focus = focusEdit
	return m, m.edit.Focus()
}

func (m Model) leaveEdit() Model {
	m.edit.Blur()
	m.edit.Reset()
	m.editID = ""
	m.focus = focusList
	m.clampCursor()
	return m
}

func (m Model) selected(view todo.View) (todo.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(view.Todos) {
		return todo.Todo{}, false
	}
	return view.Todos[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.store.Snapshot().Todos)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func nextFilter(f todo.Filter) todo.Filter {
	filters := todo.Filters()
	for i, candidate := range filters {
		if candidate == f {
			return filters[(i+1)%len(filters)]
		}
	}
	return todo.FilterAll
}

// View implements tea.Model.
func (m Model) View() string {
	view := m.store.Snapshot()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Todos"))
	b.WriteString("\n")

	addBox := inputStyle
	if m.focus == focusAdd {
		addBox = focusedInput
	}
	b.WriteString(addBox.Render(m.add.View()))
	b.WriteString("\n")
	if m.focus == focusAdd && m.canAdd() {
		b.WriteString(mutedStyle.Render("enter to add"))
	}
	b.WriteString("\n")

	if len(view.Todos) == 0 {
		b.WriteString(mutedStyle.Render("  Nothing here."))
		b.WriteString("\n")
	}
	for i, t := range view.Todos {
		b.WriteString(m.renderRow(i, t))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render(renderFooter(view)))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// canAdd mirrors the disabled add button on the web page.
func (m Model) canAdd() bool {
	return strings.TrimSpace(m.add.Value()) != ""
}

func (m Model) renderRow(i int, t todo.Todo) string {
	pointer := "  "
	if i == m.cursor && m.focus == focusList {
		pointer = cursorStyle.Render("> ")
	}

	check := "[ ] "
	if t.Completed {
		check = "[x] "
	}

	switch {
	case t.Editing && t.ID == m.editID && m.focus == focusEdit:
		return pointer + check + m.edit.View()
	case t.Editing:
		return pointer + check + t.Text + mutedStyle.Render(" (editing)")
	case t.Completed:
		return pointer + check + doneStyle.Render(t.Text)
	default:
		return pointer + check + t.Text
	}
}

func renderFooter(view todo.View) string {
	parts := []string{view.RemainingLabel()}

	var filters []string
	for _, f := range todo.Filters() {
		if f == view.Filter {
			filters = append(filters, activeFilter.Render(f.String()))
		} else {
			filters = append(filters, inactiveFilter.Render(f.String()))
		}
	}
	parts = append(parts, strings.Join(filters, " "))

	if view.HasCompleted {
		parts = append(parts, "c: clear completed")
	}
	return strings.Join(parts, "  ·  ")
}

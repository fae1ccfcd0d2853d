package todo

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store is an in-memory todo list plus the current filter.
//
// Every mutation is a silent no-op on invalid input (blank text, unknown ID)
// and reports whether anything changed. Store is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	todos  []*Todo
	filter Filter
	newID  func() string
}

// NewStore creates a store holding a copy of seed with the filter set to all.
// Seed entries without an ID are assigned one.
func NewStore(seed []Todo) *Store {
	s := &Store{
		filter: FilterAll,
		newID:  uuid.NewString,
	}
	for _, t := range seed {
		t := t
		if t.ID == "" {
			t.ID = s.newID()
		}
		s.todos = append(s.todos, &t)
	}
	return s
}

// Add appends a new incomplete todo. Blank text is ignored.
func (s *Store) Add(text string) (Todo, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Todo{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Todo{ID: s.newID(), Text: text}
	s.todos = append(s.todos, t)
	return *t, true
}

// Get returns the todo with the given ID.
func (s *Store) Get(id string) (Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t := s.find(id); t != nil {
		return *t, true
	}
	return Todo{}, false
}

// Toggle sets the completed flag of the todo with the given ID.
func (s *Store) Toggle(id string, completed bool) bool {
	return s.update(id, func(t *Todo) {
		t.Completed = completed
	})
}

// BeginEdit puts the todo into edit mode. Other todos already in edit mode
// stay there.
func (s *Store) BeginEdit(id string) bool {
	return s.update(id, func(t *Todo) {
		t.Editing = true
	})
}

// CommitEdit leaves edit mode, replacing the text when the new text is not
// blank.
func (s *Store) CommitEdit(id, text string) bool {
	text = strings.TrimSpace(text)
	return s.update(id, func(t *Todo) {
		if text != "" {
			t.Text = text
		}
		t.Editing = false
	})
}

// CancelEdit leaves edit mode without touching the text.
func (s *Store) CancelEdit(id string) bool {
	return s.update(id, func(t *Todo) {
		t.Editing = false
	})
}

// Delete removes the todo with the given ID.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.todos {
		if t.ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return true
		}
	}
	return false
}

// ClearCompleted removes every completed todo and returns how many were
// removed.
func (s *Store) ClearCompleted() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.todos[:0]
	for _, t := range s.todos {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.todos) - len(kept)
	for i := len(kept); i < len(s.todos); i++ {
		s.todos[i] = nil
	}
	s.todos = kept
	return removed
}

// SetFilter changes the current filter. Unknown filters are ignored.
func (s *Store) SetFilter(f Filter) bool {
	if _, ok := ParseFilter(string(f)); !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	return true
}

// Filter returns the current filter.
func (s *Store) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// List returns a copy of every todo in list order.
func (s *Store) List() []Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyTodos()
}

// Snapshot projects the store through the current filter.
func (s *Store) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.copyTodos()
	remaining := Remaining(all)
	return View{
		Todos:        Visible(all, s.filter),
		Filter:       s.filter,
		Remaining:    remaining,
		Total:        len(all),
		HasCompleted: remaining < len(all),
	}
}

func (s *Store) update(id string, fn func(*Todo)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.find(id)
	if t == nil {
		return false
	}
	fn(t)
	return true
}

// find must be called with s.mu held.
func (s *Store) find(id string) *Todo {
	for _, t := range s.todos {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Store) copyTodos() []Todo {
	out := make([]Todo, len(s.todos))
	for i, t := range s.todos {
		out[i] = *t
	}
	return out
}

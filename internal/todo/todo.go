// Package todo holds the todo list state: records, the view filter and the
// store that owns both.
package todo

// Todo is a single entry in the list.
type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	// Editing is UI-only state. Nothing prevents several todos from being
	// edited at the same time.
	Editing bool `json:"-"`
}

// Filter selects which todos are visible.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters returns every filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// ParseFilter converts s into a Filter. The second return value is false when
// s is not a known filter.
func ParseFilter(s string) (Filter, bool) {
	switch f := Filter(s); f {
	case FilterAll, FilterActive, FilterCompleted:
		return f, true
	}
	return "", false
}

// Match reports whether t is visible under f.
func (f Filter) Match(t Todo) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// String returns the filter name.
func (f Filter) String() string {
	return string(f)
}

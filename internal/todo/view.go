package todo

import "strconv"

// View is a point-in-time projection of the store used by renderers.
type View struct {
	Todos        []Todo // visible todos, list order
	Filter       Filter
	Remaining    int
	Total        int
	HasCompleted bool
}

// RemainingLabel returns the pluralised remaining-count label.
func (v View) RemainingLabel() string {
	return RemainingLabel(v.Remaining)
}

// Visible returns the todos matching filter, preserving order.
func Visible(todos []Todo, filter Filter) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if filter.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Remaining counts incomplete todos.
func Remaining(todos []Todo) int {
	n := 0
	for _, t := range todos {
		if !t.Completed {
			n++
		}
	}
	return n
}

// RemainingLabel formats n as "1 item left" or "N items left".
func RemainingLabel(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return strconv.Itoa(n) + " items left"
}

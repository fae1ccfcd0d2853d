package components

import (
	"github.com/pthm/hxtodo/internal/hxcmp"
	"github.com/pthm/hxtodo/internal/todo"
)

// Init creates all components over store and registers them with reg.
// Call this once at application startup before handling requests.
func Init(store *todo.Store, reg *hxcmp.Registry) *TodoApp {
	app := NewTodoApp(store)
	reg.Add(app)
	return app
}

// Package components holds the HTMX components of the todo page.
package components

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/pthm/hxtodo/internal/hxcmp"
	"github.com/pthm/hxtodo/internal/log"
	"github.com/pthm/hxtodo/internal/todo"
)

// Events emitted by TodoApp.
const (
	EventChanged   = "todos:changed"
	EventEditFocus = "todo:edit-focus"
)

// RegionID is the DOM id of the swapped todo region.
const RegionID = "todo-app"

// TodoAppProps defines the props for the TodoApp component.
type TodoAppProps struct {
	// TodoID addresses a single todo; empty for list-wide actions.
	TodoID string
	// Hydrated data (not serialized)
	View todo.View
}

// HXEncode implements hxcmp.Encodable.
func (p TodoAppProps) HXEncode() map[string]any {
	m := map[string]any{}
	if p.TodoID != "" {
		m["id"] = p.TodoID
	}
	return m
}

// HXDecode implements hxcmp.Decodable.
func (p *TodoAppProps) HXDecode(m map[string]any) error {
	if v, ok := m["id"].(string); ok {
		p.TodoID = v
	}
	return nil
}

// TodoApp renders the todo list region and handles every mutation on it.
type TodoApp struct {
	*hxcmp.Component[TodoAppProps]
	store *todo.Store
}

// NewTodoApp creates a new TodoApp component.
func NewTodoApp(store *todo.Store) *TodoApp {
	c := &TodoApp{
		Component: hxcmp.New[TodoAppProps]("todoapp"),
		store:     store,
	}
	c.Bind(c)

	c.Action("add", c.handleAdd)
	c.Action("toggle", c.handleToggle)
	c.Action("edit", c.handleEdit)
	c.Action("save", c.handleSave)
	c.Action("cancel", c.handleCancel)
	c.Action("delete", c.handleDelete).Method(http.MethodDelete)
	c.Action("clear", c.handleClear)
	c.Action("filter", c.handleFilter)
	return c
}

// Hydrate loads the current list from the store.
func (c *TodoApp) Hydrate(ctx context.Context, props *TodoAppProps) error {
	props.View = c.store.Snapshot()
	return nil
}

// Render produces the todo region.
func (c *TodoApp) Render(ctx context.Context, props TodoAppProps) templ.Component {
	return todoAppTemplate(c, props.View)
}

// Typed action builders, one per registered action.

// AddAction disables the form's button while the request is in flight so a
// double submit adds once.
func (c *TodoApp) AddAction() *hxcmp.Action {
	return c.call("add", "").DisabledElt("find button")
}

func (c *TodoApp) ToggleAction(id string) *hxcmp.Action { return c.call("toggle", id) }

func (c *TodoApp) EditAction(id string) *hxcmp.Action { return c.call("edit", id) }

func (c *TodoApp) SaveAction(id string) *hxcmp.Action { return c.call("save", id) }

func (c *TodoApp) CancelAction(id string) *hxcmp.Action { return c.call("cancel", id) }

func (c *TodoApp) DeleteAction(id string) *hxcmp.Action { return c.call("delete", id) }

func (c *TodoApp) ClearAction() *hxcmp.Action { return c.call("clear", "") }

// FilterAction sets the filter to f.
func (c *TodoApp) FilterAction(f todo.Filter) *hxcmp.Action {
	return c.call("filter", "").Vals(map[string]any{"filter": f.String()})
}

func (c *TodoApp) call(action, id string) *hxcmp.Action {
	return c.Call(action, TodoAppProps{TodoID: id}).Target("#" + RegionID)
}

func (c *TodoApp) handleAdd(ctx context.Context, props TodoAppProps, r *http.Request) hxcmp.Result[TodoAppProps] {
	if err := r.ParseForm(); err != nil {
		return hxcmp.Err(props, err)
	}

	t, ok := c.store.Add(r.FormValue("text"))
	log.Debug().Str("id", t.ID).Bool("added", ok).Msg("add todo")
	return changed(props)
}

func (c *TodoApp) handleToggle(ctx context.Context, props TodoAppProps, r *http.Request) hxcmp.Result[TodoAppProps] {
	if err := r.ParseForm(); err != nil {
		return hxcmp.Err(props, err)
	}

	// An unchecked checkbox sends nothing.
	completed := r.FormValue("completed") != ""
	ok := c.store.Toggle(props.TodoID, completed)
	log.Debug().Str("id", props.TodoID).Bool("completed", completed).Bool("found", ok).Msg("toggle todo")
	return changed(props)
}

func (c *TodoApp) handleEdit(ctx context.Context, props TodoAppProps, r *http.Request) hxcmp.Result[TodoAppProps] {
	id := props.TodoID
	ok := c.store.BeginEdit(id)
	log.Debug().Str("id", id).Bool("found", ok).Msg("begin edit")

	result := changed(props)
	if ok {
		result = result.AfterSettle(EventEditFocus, map[string]any{"id": id})
	}
	return result
}

func (c *TodoApp) handleSave(ctx context.Context, props TodoAppProps, r *http.Request) hxcmp.Result[TodoAppProps] {
	if err := r.ParseForm(); err != nil {
		return hxcmp.Err(props, err)
	}

	ok := c.store.CommitEdit(props.TodoID, r.FormValue("text"))
	log.Debug().Str("id", props.TodoID).Bool("found", ok).Msg("commit edit")
	return changed(props)
}

func (c *TodoApp) handleCancel(ctx context.Context, props TodoAppProps, r *http.Request) hxcmp.Result[TodoAppProps] {
	ok := c.store.CancelEdit(props.TodoID)
	log.Debug().Str("id", props.TodoID).Bool("found", ok).Msg("cancel edit")
	return changed(props)
}

func (c *TodoApp) handleDelete(ctx context.Context, props TodoAppProps, r *http.Request) hxcmp.Result[TodoAppProps] {
	ok := c.store.Delete(props.TodoID)
	log.Debug().Str("id", props.TodoID).Bool("found", ok).Msg("delete todo")
	return changed(props)
}

func (c *TodoApp) handleClear(ctx context.Context, props TodoAppProps, r *http.Request) hxcmp.Result[TodoAppProps] {
	n := c.store.ClearCompleted()
	log.Debug().Int("removed", n).Msg("clear completed")
	return changed(props)
}

// handleFilter applies the filter and mirrors it in the browser URL.
func (c *TodoApp) handleFilter(ctx context.Context, props TodoAppProps, r *http.Request) hxcmp.Result[TodoAppProps] {
	if err := r.ParseForm(); err != nil {
		return hxcmp.Err(props, err)
	}

	f, ok := todo.ParseFilter(r.FormValue("filter"))
	if !ok {
		return changed(props)
	}
	c.store.SetFilter(f)
	log.Debug().Str("filter", f.String()).Msg("set filter")
	return changed(props).PushURL(FilterURL(f))
}

// FilterURL is the page URL showing filter f.
func FilterURL(f todo.Filter) string {
	return "/?filter=" + f.String()
}

// changed re-renders the whole region and notifies listeners.
func changed(props TodoAppProps) hxcmp.Result[TodoAppProps] {
	props.TodoID = ""
	return hxcmp.OK(props).Trigger(EventChanged)
}

package components

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/hxtodo/internal/todo"
)

var filterLabels = map[todo.Filter]string{
	todo.FilterAll:       "All",
	todo.FilterActive:    "Active",
	todo.FilterCompleted: "Completed",
}

// EditInputID is the DOM id of the edit field for the todo with id.
func EditInputID(id string) string {
	return "edit-" + id
}

// AddForm renders the new-todo form. It lives outside the swapped region so
// re-renders never clobber what the user is typing.
func (c *TodoApp) AddForm() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<form id="add-form" class="add-form" autocomplete="off"`)
		h.attrs(c.AddAction().Attrs())
		h.raw(`>`)
		h.raw(`<input id="new-todo" class="new-todo" type="text" name="text"` +
			` placeholder="What needs to be done?" aria-label="New todo"` +
			` aria-keyshortcuts="Control+K Meta+K" autofocus>`)
		h.raw(`<button type="submit" class="add-todo" data-id="add-todo" disabled>Add</button>`)
		h.raw(`</form>`)
		return h.err
	})
}

func todoAppTemplate(c *TodoApp, v todo.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<section class="todo-app"`)
		h.attr("id", RegionID)
		h.attr("data-filter", v.Filter.String())
		h.raw(`>`)

		h.raw(`<ul class="todo-list">`)
		for _, t := range v.Todos {
			todoItem(h, c, t)
		}
		if len(v.Todos) == 0 {
			h.raw(`<li class="todo-empty">Nothing here.</li>`)
		}
		h.raw(`</ul>`)

		todoFooter(h, c, v)

		h.raw(`</section>`)
		return h.err
	})
}

func todoItem(h *htmlWriter, c *TodoApp, t todo.Todo) {
	classes := []string{"todo-item"}
	if t.Completed {
		classes = append(classes, "completed")
	}
	if t.Editing {
		classes = append(classes, "edit-mode")
	}

	h.raw(`<li`)
	h.attr("class", strings.Join(classes, " "))
	h.attr("id", "todo-"+t.ID)
	h.attr("data-todo-id", t.ID)
	h.raw(`>`)

	h.raw(`<input type="checkbox" class="toggle" data-id="chk" aria-label="Toggle completed" name="completed" value="true"`)
	h.flag("checked", t.Completed)
	h.attrs(c.ToggleAction(t.ID).Attrs())
	h.raw(`>`)

	if t.Editing {
		h.raw(`<form class="edit-form"`)
		h.attrs(c.SaveAction(t.ID).Attrs())
		h.raw(`>`)
		h.raw(`<input type="text" class="edit-input" data-id="edit-input" name="text" aria-label="Edit todo" autocomplete="off"`)
		h.attr("id", EditInputID(t.ID))
		h.attr("value", t.Text)
		h.attrs(c.CancelAction(t.ID).Trigger("keydown[key=='Escape']").Attrs())
		h.raw(`>`)
		h.raw(`<button type="submit" data-id="edit-submit">Save</button>`)
		h.raw(`</form>`)
	} else {
		h.raw(`<span class="todo-text">`)
		h.text(t.Text)
		h.raw(`</span>`)
	}

	h.raw(`<button type="button" class="edit" data-id="edit"`)
	h.attrs(c.EditAction(t.ID).Attrs())
	h.raw(`>Edit</button>`)

	h.raw(`<button type="button" class="delete" data-id="delete" aria-label="Delete todo"`)
	h.attrs(c.DeleteAction(t.ID).Attrs())
	h.raw(`>Delete</button>`)

	h.raw(`</li>`)
}

func todoFooter(h *htmlWriter, c *TodoApp, v todo.View) {
	h.raw(`<footer class="todo-footer">`)

	h.raw(`<span id="todo-count" class="todo-count">`)
	h.text(v.RemainingLabel())
	h.raw(`</span>`)

	h.raw(`<div class="filters" role="group" aria-label="Filter todos">`)
	for _, f := range todo.Filters() {
		active := f == v.Filter
		class := "filter"
		pressed := "false"
		if active {
			class += " active"
			pressed = "true"
		}

		h.raw(`<button type="button"`)
		h.attr("class", class)
		h.attr("data-filter", f.String())
		h.attr("aria-pressed", pressed)
		h.attrs(c.FilterAction(f).Attrs())
		h.raw(`>`)
		h.text(filterLabels[f])
		h.raw(`</button>`)
	}
	h.raw(`</div>`)

	h.raw(`<button type="button" id="clear-completed" class="clear-completed"`)
	h.flag("disabled", !v.HasCompleted)
	h.attrs(c.ClearAction().Attrs())
	h.raw(`>Clear completed</button>`)

	h.raw(`</footer>`)
}

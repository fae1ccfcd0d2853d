package components

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/pthm/hxtodo/internal/hxcmp"
	"github.com/pthm/hxtodo/internal/todo"
)

func newTestApp(t *testing.T) (*TodoApp, *todo.Store, *hxcmp.Registry) {
	t.Helper()
	store := todo.NewStore([]todo.Todo{
		{ID: "t1", Text: "Buy groceries"},
		{ID: "t2", Text: "Walk the dog", Completed: true},
		{ID: "t3", Text: "Read a book"},
	})
	reg, err := hxcmp.NewRegistry([]byte("components-test-key"))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return Init(store, reg), store, reg
}

func texts(store *todo.Store) []string {
	var out []string
	for _, t := range store.List() {
		out = append(out, t.Text)
	}
	return out
}

func countRows(html string) int {
	return strings.Count(html, `class="todo-item`)
}

func post(t *testing.T, app *TodoApp, a *hxcmp.Action, form map[string]string) *hxcmp.TestResult {
	t.Helper()
	result, err := hxcmp.TestCall(app, a, form)
	if err != nil {
		t.Fatalf("TestCall: %v", err)
	}
	if !result.IsOK() {
		t.Fatalf("status = %d, body %q", result.StatusCode, result.HTML)
	}
	return result
}

func TestTodoAppRender(t *testing.T) {
	app, _, _ := newTestApp(t)

	result, err := hxcmp.TestRender[TodoAppProps](app, TodoAppProps{})
	if err != nil {
		t.Fatal(err)
	}

	if n := countRows(result.HTML); n != 3 {
		t.Errorf("rendered %d rows, want 3", n)
	}
	if !result.HTMLContainsAll(
		`id="todo-app"`,
		`<span id="todo-count" class="todo-count">2 items left</span>`,
		`data-id="chk"`,
		`aria-label="Toggle completed"`,
		`<span class="todo-text">Walk the dog</span>`,
		`class="todo-item completed"`,
		`data-id="edit"`,
		`data-id="delete"`,
		`hx-delete=`,
		`hx-target="#todo-app"`,
	) {
		t.Errorf("HTML missing expected markup:\n%s", result.HTML)
	}
	if strings.Contains(result.HTML, `id="clear-completed" class="clear-completed" disabled`) {
		t.Error("clear-completed disabled while a todo is completed")
	}
}

func TestTodoAppEscapesText(t *testing.T) {
	app, store, _ := newTestApp(t)
	store.Add(`<b>"x"</b>`)

	result, err := hxcmp.TestRender[TodoAppProps](app, TodoAppProps{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(result.HTML, "<b>") {
		t.Errorf("raw markup leaked into HTML:\n%s", result.HTML)
	}
	if !result.HTMLContains(`&lt;b&gt;&#34;x&#34;&lt;/b&gt;`) {
		t.Errorf("escaped text not found:\n%s", result.HTML)
	}
}

func TestTodoAppEscapesEditValue(t *testing.T) {
	app, store, _ := newTestApp(t)
	added, _ := store.Add(`it's "quoted"`)
	store.BeginEdit(added.ID)

	result, _ := hxcmp.TestRender[TodoAppProps](app, TodoAppProps{})
	if !result.HTMLContains(`value="it&#39;s &#34;quoted&#34;"`) {
		t.Errorf("edit value not escaped:\n%s", result.HTML)
	}
}

func TestTodoAppAdd(t *testing.T) {
	app, store, _ := newTestApp(t)

	result := post(t, app, app.AddAction(), map[string]string{"text": "  Buy milk  "})

	if !result.HasEvent(EventChanged) {
		t.Errorf("TriggeredEvents = %v", result.TriggeredEvents)
	}
	if !result.HTMLContainsAll("Buy milk", "3 items left") {
		t.Errorf("HTML:\n%s", result.HTML)
	}
	got := texts(store)
	if len(got) != 4 || got[3] != "Buy milk" {
		t.Errorf("texts = %v", got)
	}
}

func TestTodoAppAddBlank(t *testing.T) {
	app, store, _ := newTestApp(t)

	for _, text := range []string{"", "   ", "\t\n"} {
		result := post(t, app, app.AddAction(), map[string]string{"text": text})
		if !result.HTMLContains("2 items left") {
			t.Errorf("add %q changed remaining count:\n%s", text, result.HTML)
		}
	}
	if n := len(store.List()); n != 3 {
		t.Errorf("len = %d, want 3", n)
	}
}

func TestTodoAppToggle(t *testing.T) {
	app, store, _ := newTestApp(t)

	result := post(t, app, app.ToggleAction("t1"), map[string]string{"completed": "true"})
	if !result.HTMLContains("1 item left") {
		t.Errorf("HTML:\n%s", result.HTML)
	}
	if got, _ := store.Get("t1"); !got.Completed {
		t.Error("t1 not completed")
	}

	// Unchecking sends no completed field.
	post(t, app, app.ToggleAction("t2"), nil)
	if got, _ := store.Get("t2"); got.Completed {
		t.Error("t2 still completed")
	}
	if got, _ := store.Get("t3"); got.Completed {
		t.Error("t3 changed")
	}
}

func TestTodoAppEditLifecycle(t *testing.T) {
	app, store, _ := newTestApp(t)

	result := post(t, app, app.EditAction("t1"), nil)
	if got := result.Headers.Get("HX-Trigger-After-Settle"); got != `{"todo:edit-focus":{"id":"t1"}}` {
		t.Errorf("HX-Trigger-After-Settle = %q", got)
	}
	if !result.HTMLContainsAll(`class="todo-item edit-mode"`, `id="edit-t1"`, `data-id="edit-input"`, `data-id="edit-submit"`, `value="Buy groceries"`) {
		t.Errorf("edit form missing:\n%s", result.HTML)
	}

	// Blank text exits edit mode without changing the text.
	post(t, app, app.SaveAction("t1"), map[string]string{"text": "   "})
	got, _ := store.Get("t1")
	if got.Editing || got.Text != "Buy groceries" {
		t.Errorf("after blank save: %+v", got)
	}

	post(t, app, app.EditAction("t1"), nil)
	result = post(t, app, app.SaveAction("t1"), map[string]string{"text": "New text"})
	got, _ = store.Get("t1")
	if got.Editing || got.Text != "New text" {
		t.Errorf("after save: %+v", got)
	}
	if strings.Contains(result.HTML, `id="edit-t1"`) {
		t.Error("edit field still rendered after save")
	}
	if result.HasAfterSettleEvent(EventEditFocus) {
		t.Error("save requested edit focus")
	}
}

func TestTodoAppEditUnknown(t *testing.T) {
	app, _, _ := newTestApp(t)

	result := post(t, app, app.EditAction("gone"), nil)
	if len(result.AfterSettleEvents) != 0 {
		t.Errorf("AfterSettleEvents = %v, want none", result.AfterSettleEvents)
	}
}

func TestTodoAppCancel(t *testing.T) {
	app, store, _ := newTestApp(t)
	store.BeginEdit("t3")

	post(t, app, app.CancelAction("t3"), map[string]string{"text": "ignored"})
	got, _ := store.Get("t3")
	if got.Editing || got.Text != "Read a book" {
		t.Errorf("after cancel: %+v", got)
	}
}

func TestTodoAppDelete(t *testing.T) {
	app, store, _ := newTestApp(t)

	a := app.DeleteAction("t2")
	if a.Method() != http.MethodDelete {
		t.Fatalf("delete method = %s", a.Method())
	}
	result := post(t, app, a, nil)

	if countRows(result.HTML) != 2 {
		t.Errorf("rows = %d, want 2", countRows(result.HTML))
	}
	got := texts(store)
	if strings.Join(got, "|") != "Buy groceries|Read a book" {
		t.Errorf("texts = %v", got)
	}
}

func TestTodoAppClearCompleted(t *testing.T) {
	app, store, _ := newTestApp(t)

	result := post(t, app, app.ClearAction(), nil)
	if len(store.List()) != 2 {
		t.Errorf("len = %d, want 2", len(store.List()))
	}
	if !result.HTMLContains(`id="clear-completed" class="clear-completed" disabled`) {
		t.Errorf("clear-completed not disabled:\n%s", result.HTML)
	}

	post(t, app, app.ClearAction(), nil)
	if len(store.List()) != 2 {
		t.Errorf("second clear changed list: %v", texts(store))
	}
}

func TestTodoAppFilter(t *testing.T) {
	app, store, _ := newTestApp(t)

	// The filter value travels in the button's hx-vals.
	result := post(t, app, app.FilterAction(todo.FilterActive), nil)

	if !result.HasHeader("HX-Push-Url", "/?filter=active") {
		t.Errorf("HX-Push-Url = %q", result.Headers.Get("HX-Push-Url"))
	}
	if store.Filter() != todo.FilterActive {
		t.Errorf("store filter = %s", store.Filter())
	}
	if countRows(result.HTML) != 2 || strings.Contains(result.HTML, "Walk the dog") {
		t.Errorf("active filter shows wrong rows:\n%s", result.HTML)
	}
	if !result.HTMLContains(`class="filter active" data-filter="active" aria-pressed="true"`) {
		t.Errorf("active filter button not marked:\n%s", result.HTML)
	}
	// The remaining count is over the whole list, not the visible rows.
	if !result.HTMLContains("2 items left") {
		t.Errorf("HTML:\n%s", result.HTML)
	}
}

func TestTodoAppFilterInvalid(t *testing.T) {
	app, store, _ := newTestApp(t)

	result, err := hxcmp.NewTestRequest(http.MethodPost, app.Call("filter", TodoAppProps{}).URL()).
		WithFormData("filter", "bogus").
		Execute(app)
	if err != nil {
		t.Fatal(err)
	}
	if result.Headers.Get("HX-Push-Url") != "" {
		t.Error("invalid filter pushed a URL")
	}
	if store.Filter() != todo.FilterAll {
		t.Errorf("store filter = %s", store.Filter())
	}
}

func TestTodoAppRejectsBadRequests(t *testing.T) {
	app, store, reg := newTestApp(t)
	url := app.DeleteAction("t1").URL()

	tampered := strings.Replace(url, "?p=", "?p=x", 1)
	result, _ := hxcmp.NewTestRequest(http.MethodDelete, tampered).ExecuteHandler(reg.Handler())
	if !result.HasStatus(http.StatusBadRequest) {
		t.Errorf("tampered props: status = %d, want 400", result.StatusCode)
	}

	result, _ = hxcmp.NewTestRequest(http.MethodDelete, url).
		WithHeader("HX-Request", "").
		ExecuteHandler(reg.Handler())
	if !result.HasStatus(http.StatusForbidden) {
		t.Errorf("non-HTMX delete: status = %d, want 403", result.StatusCode)
	}

	result, _ = hxcmp.NewTestRequest(http.MethodPost, app.HXPrefix()+"/archive").ExecuteHandler(reg.Handler())
	if !result.HasStatus(http.StatusNotFound) {
		t.Errorf("unknown action: status = %d, want 404", result.StatusCode)
	}

	if len(store.List()) != 3 {
		t.Errorf("rejected requests changed the list: %v", texts(store))
	}
}

func TestTodoAppPropsRoundTrip(t *testing.T) {
	var p TodoAppProps
	if err := p.HXDecode(TodoAppProps{TodoID: "abc"}.HXEncode()); err != nil {
		t.Fatal(err)
	}
	if p.TodoID != "abc" {
		t.Errorf("TodoID = %q", p.TodoID)
	}
	if len(TodoAppProps{}.HXEncode()) != 0 {
		t.Error("empty props encoded an id")
	}
}

func TestAddForm(t *testing.T) {
	app, _, _ := newTestApp(t)

	var buf bytes.Buffer
	if err := app.AddForm().Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	html := buf.String()

	for _, want := range []string{
		`id="add-form"`,
		`hx-post="` + templEscape(app.AddAction().URL()) + `"`,
		`hx-disabled-elt="find button"`,
		`id="new-todo"`,
		`name="text"`,
		`data-id="add-todo" disabled`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("AddForm missing %q:\n%s", want, html)
		}
	}
}

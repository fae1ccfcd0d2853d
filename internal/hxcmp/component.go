package hxcmp

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// HandlerFunc handles one named action. It receives hydrated props and
// returns a Result describing what to render and which headers to send.
type HandlerFunc[P any] func(ctx context.Context, props P, r *http.Request) Result[P]

// ErrorHandler writes the response for a failed request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// actionDef holds metadata about a registered action.
type actionDef[P any] struct {
	name    string
	method  string
	handler HandlerFunc[P]
}

// Component[P] is the base type embedded by concrete components. P is the
// props type; *P must implement Decodable and P must implement Encodable.
//
//	type TodoApp struct {
//	    *hxcmp.Component[TodoAppProps]
//	    store *todo.Store
//	}
//
//	func NewTodoApp(store *todo.Store) *TodoApp {
//	    c := &TodoApp{Component: hxcmp.New[TodoAppProps]("todoapp"), store: store}
//	    c.Bind(c)
//	    c.Action("add", c.handleAdd)
//	    return c
//	}
//
// The embedded base dispatches requests: it decodes props from the "p" query
// parameter, calls Hydrate, routes to the action handler and renders the
// result.
type Component[P any] struct {
	name      string
	prefix    string
	sensitive bool
	actions   map[string]*actionDef[P]
	encoder   *Encoder
	lifecycle Lifecycle[P]
	onError   ErrorHandler
}

// New creates a component. Its URL prefix combines name with a hash of the
// caller's source location, so two components with the same name still get
// distinct routes.
func New[P any](name string) *Component[P] {
	return &Component[P]{
		name:    name,
		prefix:  "/_c/" + name + "-" + componentHash(name, 1),
		actions: make(map[string]*actionDef[P]),
	}
}

// Sensitive switches props from signed to encrypted.
func (c *Component[P]) Sensitive() *Component[P] {
	c.sensitive = true
	return c
}

// Bind attaches the concrete component implementing the lifecycle.
func (c *Component[P]) Bind(l Lifecycle[P]) {
	c.lifecycle = l
}

// Action registers a named action handler. Actions default to POST.
//
//	c.Action("toggle", c.handleToggle)
//	c.Action("delete", c.handleDelete).Method(http.MethodDelete)
func (c *Component[P]) Action(name string, handler HandlerFunc[P]) *ActionBuilder {
	def := &actionDef[P]{name: name, method: http.MethodPost, handler: handler}
	c.actions[name] = def
	return &ActionBuilder{method: &def.method}
}

// SetEncoder sets the props encoder. Called by the Registry.
func (c *Component[P]) SetEncoder(enc *Encoder) {
	c.encoder = enc
}

// SetErrorHandler sets the error handler. Called by the Registry.
func (c *Component[P]) SetErrorHandler(h ErrorHandler) {
	c.onError = h
}

// Refresh returns an action that re-renders the component with props.
func (c *Component[P]) Refresh(props P) *Action {
	return NewAction(c.buildURL("", props), http.MethodGet)
}

// Call returns an action for the named action with props encoded into the
// URL. It panics if the action is not registered.
func (c *Component[P]) Call(action string, props P) *Action {
	def, ok := c.actions[action]
	if !ok {
		panic(fmt.Sprintf("hxcmp: %s has no action %q", c.name, action))
	}
	return NewAction(c.buildURL(action, props), def.method)
}

// HXPrefix implements HXComponent.
func (c *Component[P]) HXPrefix() string {
	return c.prefix
}

// HXServeHTTP implements HXComponent.
func (c *Component[P]) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	if c.lifecycle == nil {
		c.fail(w, r, fmt.Errorf("hxcmp: component %q is not bound", c.name))
		return
	}

	var props P
	if encoded := r.URL.Query().Get("p"); encoded != "" {
		if c.encoder == nil {
			c.fail(w, r, fmt.Errorf("hxcmp: component %q has no encoder", c.name))
			return
		}
		if err := c.encoder.Decode(encoded, c.sensitive, &props); err != nil {
			c.fail(w, r, wrapEncodingError(err))
			return
		}
	}

	ctx := r.Context()
	if err := c.lifecycle.Hydrate(ctx, &props); err != nil {
		c.fail(w, r, fmt.Errorf("%w: %v", ErrHydrationFailed, err))
		return
	}

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, c.prefix), "/")
	if name == "" {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet)
			c.fail(w, r, ErrMethodNotAllowed)
			return
		}
		c.render(w, r, props)
		return
	}

	def, ok := c.actions[name]
	if !ok {
		c.fail(w, r, ErrNotFound)
		return
	}
	if r.Method != def.method {
		w.Header().Set("Allow", def.method)
		c.fail(w, r, ErrMethodNotAllowed)
		return
	}

	c.handleResult(w, r, def.handler(ctx, props, r))
}

func (c *Component[P]) handleResult(w http.ResponseWriter, r *http.Request, result Result[P]) {
	if err := result.GetErr(); err != nil {
		c.fail(w, r, err)
		return
	}

	h := w.Header()
	for k, v := range result.GetHeaders() {
		h.Set(k, v)
	}
	if t := BuildTriggerHeader(result.GetTrigger(), result.GetTriggerData()); t != "" {
		h.Set("HX-Trigger", t)
	}
	if t := BuildTriggerHeader(result.GetAfterSettle(), result.GetAfterSettleData()); t != "" {
		h.Set("HX-Trigger-After-Settle", t)
	}
	// Re-hydrate so the render reflects the mutation the handler just made.
	props := result.GetProps()
	if err := c.lifecycle.Hydrate(r.Context(), &props); err != nil {
		c.fail(w, r, fmt.Errorf("%w: %v", ErrHydrationFailed, err))
		return
	}
	c.render(w, r, props)
}

// render buffers the output so a template error can still produce an error
// response instead of half-written HTML.
func (c *Component[P]) render(w http.ResponseWriter, r *http.Request, props P) {
	var buf bytes.Buffer
	if err := c.lifecycle.Render(r.Context(), props).Render(r.Context(), &buf); err != nil {
		c.fail(w, r, fmt.Errorf("hxcmp: render %s: %w", c.name, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (c *Component[P]) fail(w http.ResponseWriter, r *http.Request, err error) {
	if c.onError != nil {
		c.onError(w, r, err)
		return
	}
	DefaultErrorHandler(w, r, err)
}

// buildURL constructs the URL for an action with encoded props.
// An empty action means the default render.
func (c *Component[P]) buildURL(action string, props P) string {
	path := c.prefix + "/" + action

	if c.encoder == nil {
		return path
	}
	encoded, err := c.encoder.Encode(props, c.sensitive)
	if err != nil {
		return path
	}
	return path + "?p=" + url.QueryEscape(encoded)
}

// DefaultErrorHandler maps sentinel errors onto status codes.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case IsNotFound(err):
		http.Error(w, "Not found", http.StatusNotFound)
	case IsBadRequest(err):
		http.Error(w, "Bad request", http.StatusBadRequest)
	case errors.Is(err, ErrMethodNotAllowed):
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	default:
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// componentHash derives 8 hex characters from the component name and the
// file:line of the caller skip frames up.
func componentHash(name string, skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	input := name
	if ok {
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4])
}

// Package hxcmp is a small component system for server-rendered pages driven
// by HTMX and templ.
//
// # Components
//
// A component embeds *Component[P], where P is its props type, and binds
// itself so the base can call its lifecycle:
//
//	type TodoApp struct {
//	    *hxcmp.Component[TodoAppProps]
//	    store *todo.Store
//	}
//
//	c := &TodoApp{Component: hxcmp.New[TodoAppProps]("todoapp"), store: store}
//	c.Bind(c)
//
// Hydrate(ctx, *P) rebuilds rich data from lean props and runs before every
// handler. Render(ctx, P) produces the markup. After an action succeeds the
// props are hydrated again and rendered, so the response always shows the
// state the action left behind.
//
// # Actions
//
// Actions are named handlers mounted under the component prefix:
//
//	c.Action("add", c.handleAdd)
//	c.Action("delete", c.handleDelete).Method(http.MethodDelete)
//
// Call builds the HTMX attributes for one, with props encoded into the URL:
//
//	c.Call("delete", props).Target("#todo-app").Attrs()
//
// Handlers return a Result, which can add HX-Trigger, HX-Trigger-After-Settle
// and arbitrary headers to the response.
//
// # Props
//
// Props travel in the "p" query parameter. They are msgpack-encoded through
// their HXEncode/HXDecode methods and then signed with HMAC, or encrypted
// with AES-GCM when the component is Sensitive. A tampered or malformed
// value is a bad request.
//
// # Registry
//
// The Registry owns the encoder and mounts components:
//
//	reg, err := hxcmp.NewRegistry(key)
//	reg.Add(app)
//	mux.Handle("/_c/", reg.Handler())
//
// Requests with mutating methods must carry HX-Request: true, which stops
// plain cross-origin form posts. Failures are logged and passed to
// Registry.OnError.
package hxcmp

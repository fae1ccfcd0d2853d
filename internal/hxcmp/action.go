package hxcmp

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
)

// ActionBuilder configures an action at registration time.
type ActionBuilder struct {
	method *string
}

// Method overrides the default POST method.
//
//	c.Action("delete", c.handleDelete).Method(http.MethodDelete)
func (ab *ActionBuilder) Method(m string) *ActionBuilder {
	*ab.method = m
	return ab
}

// Action builds the HTMX attributes for one request. Create it with
// Component.Call or Component.Refresh, refine it fluently, then spread it
// onto an element with Attrs.
//
//	c.Call("toggle", props).Target("#todo-app").Attrs()
type Action struct {
	url      string
	method   string
	target   string
	trigger  string
	vals     map[string]any
	disabled string
}

// swapOuter replaces the target element itself with the response.
const swapOuter = "outerHTML"

// NewAction creates an action for url and method. An empty method means GET.
func NewAction(url, method string) *Action {
	if method == "" {
		method = http.MethodGet
	}
	return &Action{url: url, method: method}
}

// URL returns the request URL including encoded props.
func (a *Action) URL() string {
	return a.url
}

// Method returns the HTTP method.
func (a *Action) Method() string {
	return a.method
}

// Target sets hx-target.
func (a *Action) Target(selector string) *Action {
	a.target = selector
	return a
}

// Trigger sets a raw hx-trigger expression, e.g. "keyup[key=='Escape']".
func (a *Action) Trigger(expr string) *Action {
	a.trigger = expr
	return a
}

// Vals adds static values to the request parameters.
func (a *Action) Vals(vals map[string]any) *Action {
	if a.vals == nil {
		a.vals = make(map[string]any, len(vals))
	}
	for k, v := range vals {
		a.vals[k] = v
	}
	return a
}

// DisabledElt disables the matched elements while the request is in flight.
func (a *Action) DisabledElt(selector string) *Action {
	a.disabled = selector
	return a
}

// Attrs returns the attributes to place on the triggering element.
func (a *Action) Attrs() templ.Attributes {
	attrs := templ.Attributes{}

	switch a.method {
	case http.MethodPost:
		attrs["hx-post"] = a.url
	case http.MethodPut:
		attrs["hx-put"] = a.url
	case http.MethodPatch:
		attrs["hx-patch"] = a.url
	case http.MethodDelete:
		attrs["hx-delete"] = a.url
	default:
		attrs["hx-get"] = a.url
	}

	attrs["hx-swap"] = swapOuter
	if a.target != "" {
		attrs["hx-target"] = a.target
	}
	if a.trigger != "" {
		attrs["hx-trigger"] = a.trigger
	}
	if a.disabled != "" {
		attrs["hx-disabled-elt"] = a.disabled
	}
	if len(a.vals) > 0 {
		data, err := json.Marshal(a.vals)
		if err == nil {
			attrs["hx-vals"] = string(data)
		}
	}
	return attrs
}

package hxcmp

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
)

// Render writes a templ component as an HTML response.
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    hxcmp.Render(w, r, page())
//	}
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX reports whether the request was sent by HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// BuildTriggerHeader formats an HX-Trigger style header value.
//
// Without data the event name is returned as is; with data the value is the
// JSON object {event: data}, which HTMX exposes as evt.detail.
func BuildTriggerHeader(event string, data map[string]any) string {
	if event == "" {
		return ""
	}
	if data == nil {
		return event
	}

	out, err := json.Marshal(map[string]any{event: data})
	if err != nil {
		return event
	}
	return string(out)
}

package components

import (
	"io"
	"sort"

	"github.com/a-h/templ"
)

// htmlWriter writes markup and remembers the first error so templates can
// be written straight through.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes s HTML-escaped.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// flag writes a boolean attribute when on.
func (h *htmlWriter) flag(name string, on bool) {
	if on {
		h.raw(" " + name)
	}
}

// attrs writes a templ attribute set in key order. Strings are escaped,
// true bools become bare attributes and anything else is skipped.
func (h *htmlWriter) attrs(a templ.Attributes) {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := a[k].(type) {
		case string:
			h.attr(k, v)
		case bool:
			h.flag(k, v)
		}
	}
}

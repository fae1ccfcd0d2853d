package hxcmp

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
)

// Hydrater is implemented by components to rebuild rich data from the lean
// props carried in URLs. It runs before every handler and again before the
// post-action render, so Render always sees current state.
type Hydrater[P any] interface {
	Hydrate(ctx context.Context, props *P) error
}

// Renderer is implemented by components to produce their markup. Render
// should be pure: it reads props and writes HTML.
type Renderer[P any] interface {
	Render(ctx context.Context, props P) templ.Component
}

// Lifecycle combines Hydrater and Renderer. The concrete component passes
// itself to Component.Bind so the embedded base can dispatch to it.
type Lifecycle[P any] interface {
	Hydrater[P]
	Renderer[P]
}

// HXComponent is what the Registry mounts. Every type embedding
// *Component[P] satisfies it through promoted methods.
type HXComponent interface {
	HXPrefix() string
	HXServeHTTP(w http.ResponseWriter, r *http.Request)
}

package server

import (
	"crypto/rand"
	"fmt"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/hxtodo/internal/hxcmp"
)

// ComponentPath is where component routes are mounted.
const ComponentPath = "/_c/"

// Option configures Mount.
type Option func(*options)

type options struct {
	key []byte
}

// WithKey sets the props key for the registry. Without it a random key is
// generated, which is only suitable for development.
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// Mount creates a registry and mounts its handler on e.
//
//	e := echo.New()
//	reg, err := server.Mount(e, server.WithKey(key))
//	components.Init(store, reg)
func Mount(e *echo.Echo, opts ...Option) (*hxcmp.Registry, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	key := o.key
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generating props key: %w", err)
		}
	}

	reg, err := hxcmp.NewRegistry(key)
	if err != nil {
		return nil, err
	}
	e.Any(ComponentPath+"*", echo.WrapHandler(reg.Handler()))
	return reg, nil
}

// Render writes a templ component to the Echo response.
func Render(c echo.Context, component templ.Component) error {
	return hxcmp.Render(c.Response(), c.Request(), component)
}

// Package server serves the todo page and its components over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pthm/hxtodo/internal/components"
	"github.com/pthm/hxtodo/internal/config"
	"github.com/pthm/hxtodo/internal/log"
	"github.com/pthm/hxtodo/internal/todo"
)

//go:embed static
var staticFS embed.FS

const shutdownTimeout = 5 * time.Second

// Server is the HTTP front end for one todo store.
type Server struct {
	e     *echo.Echo
	addr  string
	store *todo.Store
	app   *components.TodoApp
}

// New builds the echo instance, mounts the components and registers the
// page routes.
func New(cfg *config.Config, store *todo.Store) (*Server, error) {
	key, err := cfg.SecretKey()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ErrorLog = log.StdErrorLogger()

	e.Use(log.EchoLogger())
	e.Use(middleware.Recover())

	reg, err := Mount(e, WithKey(key))
	if err != nil {
		return nil, err
	}

	app := components.Init(store, reg)
	if cfg.SensitiveProps {
		app.Sensitive()
	}

	s := &Server{e: e, addr: cfg.Addr, store: store, app: app}

	e.GET("/", s.handleIndex)
	e.GET("/healthz", s.handleHealth)
	e.StaticFS("/static", echo.MustSubFS(staticFS, "static"))

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.e
}

// App returns the mounted todo component.
func (s *Server) App() *components.TodoApp {
	return s.app
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("listening")
		errc <- s.e.Start(s.addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info().Msg("shutting down")
	return s.e.Shutdown(shutdownCtx)
}

// handleIndex renders the full page. A valid ?filter= applies that filter
// first, so pushed URLs survive a reload. Cross-site requests render without
// touching the stored filter.
func (s *Server) handleIndex(c echo.Context) error {
	if f, ok := todo.ParseFilter(c.QueryParam("filter")); ok && !crossSite(c.Request()) {
		s.store.SetFilter(f)
	}

	ctx := c.Request().Context()
	props := components.TodoAppProps{}
	if err := s.app.Hydrate(ctx, &props); err != nil {
		return err
	}

	return Render(c, page(s.app.AddForm(), s.app.Render(ctx, props)))
}

// crossSite reports whether the browser marked r as initiated by another
// site. Requests without Sec-Fetch-Site (older browsers, curl) are trusted.
func crossSite(r *http.Request) bool {
	switch r.Header.Get("Sec-Fetch-Site") {
	case "", "same-origin", "none":
		return false
	}
	return true
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

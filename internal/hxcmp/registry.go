package hxcmp

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/pthm/hxtodo/internal/log"
)

type encoderSetter interface {
	SetEncoder(*Encoder)
}

type errorHandlerSetter interface {
	SetErrorHandler(ErrorHandler)
}

// Registry mounts components and routes requests to them.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	encoder    *Encoder
	components map[string]HXComponent

	// OnError writes the response when a component fails. It defaults to
	// DefaultErrorHandler. Errors are logged before OnError runs.
	OnError ErrorHandler
}

// NewRegistry creates a registry whose components encode props with key.
func NewRegistry(key []byte) (*Registry, error) {
	enc, err := NewEncoder(key)
	if err != nil {
		return nil, fmt.Errorf("hxcmp: create encoder: %w", err)
	}

	return &Registry{
		mux:        http.NewServeMux(),
		encoder:    enc,
		components: make(map[string]HXComponent),
		OnError:    DefaultErrorHandler,
	}, nil
}

// Encoder returns the registry's encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Add registers components. It panics on a prefix collision.
func (reg *Registry) Add(components ...HXComponent) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, comp := range components {
		prefix := comp.HXPrefix()
		if _, exists := reg.components[prefix]; exists {
			panic(fmt.Sprintf("hxcmp: prefix collision for %q", prefix))
		}

		if s, ok := comp.(encoderSetter); ok {
			s.SetEncoder(reg.encoder)
		}
		if s, ok := comp.(errorHandlerSetter); ok {
			s.SetErrorHandler(reg.handleError)
		}

		reg.components[prefix] = comp
		reg.mux.HandleFunc(prefix+"/", comp.HXServeHTTP)

		log.Debug().Str("prefix", prefix).Msg("component registered")
	}
}

// Handler returns the HTTP handler for component routes. Mount it at "/_c/".
//
// Mutating methods must carry the HX-Request header HTMX sends; browsers
// will not add it to cross-origin form posts.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead && !IsHTMX(r) {
			http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
			return
		}

		reg.mu.RLock()
		mux := reg.mux
		reg.mu.RUnlock()
		mux.ServeHTTP(w, r)
	})
}

func (reg *Registry) handleError(w http.ResponseWriter, r *http.Request, err error) {
	event := log.Error()
	if IsNotFound(err) || IsBadRequest(err) || errors.Is(err, ErrMethodNotAllowed) {
		event = log.Warn()
	}
	event.Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("component request failed")

	onError := reg.OnError
	if onError == nil {
		onError = DefaultErrorHandler
	}
	onError(w, r, err)
}

package db

import (
	"context"
	"errors"
	"sort"
)

// Registry maps a database kind to its initialized handler. It is built
// once at startup from configuration and read-only afterwards; a kind is
// present only if its handler connected successfully.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a connected handler under its kind
func (r *Registry) Register(h Handler) {
	r.handlers[h.Kind()] = h
}

// Get returns the handler for a kind, if configured
func (r *Registry) Get(kind string) (Handler, bool) {
	h, ok := r.handlers[kind]
	return h, ok
}

// Kinds returns the configured database kinds in sorted order
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.handlers))
	for kind := range r.handlers {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Close closes every registered handler, collecting failures
func (r *Registry) Close(ctx context.Context) error {
	var errs []error
	for _, h := range r.handlers {
		if err := h.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

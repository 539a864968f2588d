// Package middleware provides the HTTP middleware stack and the standard
// request middleware: request IDs, access logging, panic recovery, and CORS.
package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware = func(http.Handler) http.Handler

// System manages an ordered stack of HTTP middleware.
// The first middleware added is the outermost when applied.
type System interface {
	Use(mw Middleware)
	Apply(handler http.Handler) http.Handler
}

type stack struct {
	items []Middleware
}

// New creates an empty middleware System.
func New() System {
	return &stack{items: []Middleware{}}
}

func (s *stack) Use(mw Middleware) {
	s.items = append(s.items, mw)
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	return Chain(handler, s.items...)
}

// Chain wraps handler so that mws[0] runs first.
func Chain(handler http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return handler
}

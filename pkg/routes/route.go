// Package routes declares HTTP routes as data so each domain handler can
// describe its endpoints and the API module can register them on one mux.
package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
// Middleware wraps only this route, inside any group middleware.
// Summary and Public describe the route in generated API documentation;
// Public routes accept anonymous callers.
type Route struct {
	Method     string
	Pattern    string
	Handler    http.HandlerFunc
	Middleware []func(http.Handler) http.Handler
	Summary    string
	Public     bool
}

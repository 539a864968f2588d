package routes

import (
	"net/http"

	"github.com/JaimeStill/cmdreview/pkg/middleware"
)

// Group organizes routes under a common prefix. Middleware applies to every
// route in the group and its children, outermost first.
type Group struct {
	Prefix     string
	Middleware []func(http.Handler) http.Handler
	Routes     []Route
	Children   []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", nil, group)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, inherited []middleware.Middleware, group Group) {
	prefix := parentPrefix + group.Prefix
	chain := append(append([]middleware.Middleware{}, inherited...), group.Middleware...)

	for _, route := range group.Routes {
		mws := append(append([]middleware.Middleware{}, chain...), route.Middleware...)
		mux.Handle(route.Method+" "+prefix+route.Pattern, middleware.Chain(route.Handler, mws...))
	}
	for _, child := range group.Children {
		registerGroup(mux, prefix, chain, child)
	}
}

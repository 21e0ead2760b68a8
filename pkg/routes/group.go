// Package routes declares HTTP routes as nested prefix groups and registers
// them on a ServeMux.
package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler. Pattern is appended
// to the enclosing group prefixes; an empty pattern serves the prefix itself.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group organizes routes under a common prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		pattern := route.Method + " " + fullPrefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, child)
	}
}

// Wrap returns a copy of g with mw applied to every route handler,
// including those of child groups.
func Wrap(g Group, mw func(http.Handler) http.Handler) Group {
	wrapped := Group{
		Prefix:   g.Prefix,
		Routes:   make([]Route, len(g.Routes)),
		Children: make([]Group, len(g.Children)),
	}
	for i, r := range g.Routes {
		r.Handler = mw(r.Handler).ServeHTTP
		wrapped.Routes[i] = r
	}
	for i, c := range g.Children {
		wrapped.Children[i] = Wrap(c, mw)
	}
	return wrapped
}

// Package router maps request paths to http.Handlers and composes middleware
// around them.
package router

import (
	"net/http"
)

// Router is the routing surface the application depends on.
type Router interface {
	http.Handler
	// Handle registers handler for method and path. Paths follow the
	// implementation's pattern syntax.
	Handle(method, path string, handler http.Handler)
	// NotFound sets the handler for unmatched requests.
	NotFound(handler http.Handler)
}

// Read registers handler for GET and HEAD on path.
func Read(r Router, path string, handler http.Handler) {
	r.Handle(http.MethodGet, path, handler)
	r.Handle(http.MethodHead, path, handler)
}

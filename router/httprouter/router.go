package httprouter

import (
	"net/http"

	"github.com/caasmo/webjarcors/router"
	jshttprouter "github.com/julienschmidt/httprouter"
)

// Router implements router.Router on julienschmidt/httprouter.
type Router struct {
	rt *jshttprouter.Router
}

func New() *Router {
	rt := jshttprouter.New()
	// Asset paths are exact; a redirect would hide a bad reference.
	rt.RedirectTrailingSlash = false
	rt.RedirectFixedPath = false
	return &Router{rt: rt}
}

var _ router.Router = (*Router)(nil)

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.rt.ServeHTTP(w, req)
}

func (r *Router) Handle(method, path string, handler http.Handler) {
	r.rt.Handler(method, path, handler)
}

func (r *Router) NotFound(handler http.Handler) {
	r.rt.NotFound = handler
}

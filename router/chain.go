package router

import (
	"net/http"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain composes a base handler with middlewares and observers.
type Chain struct {
	handler     http.Handler
	middlewares []Middleware
	observers   []http.Handler
}

// NewChain panics if h is nil.
func NewChain(h http.Handler) *Chain {
	if h == nil {
		panic("chain handler cannot be nil")
	}
	return &Chain{handler: h}
}

// WithMiddleware appends middlewares. The first middleware added is the
// outermost and runs first:
//
//	NewChain(h).WithMiddleware(mw1, mw2)
//
// runs mw1, then mw2, then h.
func (c *Chain) WithMiddleware(middlewares ...Middleware) *Chain {
	for _, mw := range middlewares {
		if mw != nil {
			c.middlewares = append(c.middlewares, mw)
		}
	}
	return c
}

// WithObservers adds handlers that run after the middleware-wrapped handler
// returns, even when a middleware stopped the request early. Observers must
// not write to the response.
func (c *Chain) WithObservers(observers ...http.Handler) *Chain {
	c.observers = append(c.observers, observers...)
	return c
}

// Handler returns the composed handler.
func (c *Chain) Handler() http.Handler {
	handler := c.handler
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		handler = c.middlewares[i](handler)
	}

	if len(c.observers) == 0 {
		return handler
	}

	observers := append([]http.Handler(nil), c.observers...)
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		handler.ServeHTTP(w, req)
		for _, obs := range observers {
			obs.ServeHTTP(w, req)
		}
	})
}

// Package container carries the per-request request/response pair that
// resource handlers act on. Handlers do not receive the response as an
// argument; they ask a Container for the one bound to the request context.
package container

import (
	"context"
	"net/http"
)

type ctxKey int

const (
	responseKey ctxKey = iota
	requestKey
)

// Container gives handlers access to the current request and response.
type Container interface {
	// Response returns the response bound to ctx, or nil.
	Response(ctx context.Context) Response
	// Request returns the HTTP request bound to ctx, or nil when the
	// request did not come in over HTTP.
	Request(ctx context.Context) *http.Request
}

// WithResponse binds resp to the returned context.
func WithResponse(ctx context.Context, resp Response) context.Context {
	return context.WithValue(ctx, responseKey, resp)
}

// WithRequest binds r to the returned context.
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, requestKey, r)
}

// WithHTTP binds both halves of an HTTP exchange.
func WithHTTP(ctx context.Context, w http.ResponseWriter, r *http.Request) context.Context {
	return WithResponse(WithRequest(ctx, r), NewHTTPResponse(w))
}

// Contextual is the Container backed by context values set with
// WithResponse and WithRequest.
type Contextual struct{}

var _ Container = Contextual{}

// New returns the default Container.
func New() Contextual {
	return Contextual{}
}

func (Contextual) Response(ctx context.Context) Response {
	resp, _ := ctx.Value(responseKey).(Response)
	return resp
}

func (Contextual) Request(ctx context.Context) *http.Request {
	r, _ := ctx.Value(requestKey).(*http.Request)
	return r
}

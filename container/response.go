package container

import (
	"bytes"
	"net/http"

	"golang.org/x/net/http/httpguts"
)

// Response is the reply being built for the current request. Not every
// transport exposes headers; callers check SupportsHeaders before relying on
// SetHeader having an effect.
type Response interface {
	SupportsHeaders() bool
	// SetHeader replaces any value for name. It is a no-op on responses
	// without header support.
	SetHeader(name, value string)
}

// HTTPResponse is a Response backed by a real HTTP transport.
type HTTPResponse struct {
	w http.ResponseWriter
}

var _ Response = (*HTTPResponse)(nil)

// NewHTTPResponse wraps w.
func NewHTTPResponse(w http.ResponseWriter) *HTTPResponse {
	if w == nil {
		panic("http response writer cannot be nil")
	}
	return &HTTPResponse{w: w}
}

func (r *HTTPResponse) SupportsHeaders() bool { return true }

func (r *HTTPResponse) SetHeader(name, value string) {
	r.TrySetHeader(name, value)
}

// TrySetHeader sets the header and reports whether it was accepted. Names
// that are not HTTP tokens and values with control characters are dropped.
func (r *HTTPResponse) TrySetHeader(name, value string) bool {
	if !httpguts.ValidHeaderFieldName(name) || !httpguts.ValidHeaderFieldValue(value) {
		return false
	}
	r.w.Header().Set(name, value)
	return true
}

// Writer returns the underlying writer for handlers that produce a body.
func (r *HTTPResponse) Writer() http.ResponseWriter {
	return r.w
}

// HeadlessResponse is a Response for transports with no header channel,
// such as in-process rendering or tests. The body is kept in memory.
type HeadlessResponse struct {
	Body bytes.Buffer
}

var _ Response = (*HeadlessResponse)(nil)

func (*HeadlessResponse) SupportsHeaders() bool { return false }

func (*HeadlessResponse) SetHeader(string, string) {}

func (r *HeadlessResponse) Write(p []byte) (int, error) {
	return r.Body.Write(p)
}

// Package cors lets browsers read bundled library assets (scripts, fonts)
// from pages served by other origins.
//
// Without an allow header on the response, a browser refuses to use a font
// or module fetched cross-origin. The handler attaches
// "Access-Control-Allow-Origin: *" to every webjars response and hands the
// request on. It does not look at the request Origin and does not answer
// preflight requests.
package cors

import (
	"context"
	"io"
	"log/slog"

	"github.com/caasmo/webjarcors/container"
	"github.com/caasmo/webjarcors/resource"
	"github.com/caasmo/webjarcors/webjars"
)

const (
	// Name is the registry name of the handler.
	Name = "cors"

	// Priority places the handler ahead of the webjars serving handler. The
	// exact value carries no meaning beyond that.
	Priority = 1500

	// HeaderAllowOrigin is the response header set by the handler.
	HeaderAllowOrigin = "Access-Control-Allow-Origin"
	// AllowAnyOrigin is its value, readable from every origin.
	AllowAnyOrigin = "*"
)

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used to trace header injections at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

// Handler sets the wildcard allow-origin header on webjars responses.
type Handler struct {
	resource.Prioritized
	container container.Container
	logger    *slog.Logger
}

var (
	_ resource.Handler       = (*Handler)(nil)
	_ resource.Initializable = (*Handler)(nil)
)

// New creates the handler. c supplies the response of the request being
// handled.
func New(c container.Container, opts ...Option) *Handler {
	if c == nil {
		panic("cors: container cannot be nil")
	}
	h := &Handler{
		container: c,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Name() string { return Name }

// SupportedTypes returns the webjars type only.
func (h *Handler) SupportedTypes() []resource.Type {
	return []resource.Type{webjars.Type}
}

// Initialize fixes the handler priority.
func (h *Handler) Initialize() error {
	h.SetPriority(Priority)
	return nil
}

// Handle sets the header when the response has headers and always continues
// the chain. Errors from the rest of the chain are returned as is; a header
// already set is not undone.
func (h *Handler) Handle(ctx context.Context, ref resource.Reference, chain resource.Chain) error {
	if resp := h.container.Response(ctx); resp != nil && resp.SupportsHeaders() {
		resp.SetHeader(HeaderAllowOrigin, AllowAnyOrigin)
		h.logger.Debug("cors header set", "reference", ref)
	}

	// Lower-priority handlers may still have work to do for this reference.
	return chain.Next(ctx, ref)
}

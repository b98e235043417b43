package webjarcors

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/caasmo/webjarcors/config"
	"github.com/caasmo/webjarcors/core"
	phuslog "github.com/phuslu/log"
	"github.com/prometheus/client_golang/prometheus"
)

type setup struct {
	logger   *slog.Logger
	registry *prometheus.Registry
	assets   fs.FS
	handlers []extraHandler
}

type extraHandler struct {
	name    string
	factory core.HandlerFactory
}

type Option func(*setup)

// WithLogger overrides the logger built from the log config.
func WithLogger(l *slog.Logger) Option {
	return func(s *setup) {
		s.logger = l
	}
}

// WithRegistry sets the Prometheus registry for all metrics and the
// metrics endpoint.
func WithRegistry(r *prometheus.Registry) Option {
	return func(s *setup) {
		s.registry = r
	}
}

// WithAssets serves library files from fsys instead of the configured root.
func WithAssets(fsys fs.FS) Option {
	return func(s *setup) {
		s.assets = fsys
	}
}

// WithHandler adds a resource handler to the chain. Its priority decides
// where it runs relative to cors (1500) and asset serving (2000).
func WithHandler(name string, factory core.HandlerFactory) Option {
	return func(s *setup) {
		s.handlers = append(s.handlers, extraHandler{name: name, factory: factory})
	}
}

// DefaultLoggerOptions removes the time attribute from output.
var DefaultLoggerOptions = &slog.HandlerOptions{
	Level: slog.LevelInfo,
	ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{} // Return empty Attr to remove
		}
		return a
	},
}

// NewLogger builds the logger for cfg: phuslu/log's JSON handler on stderr
// for "json", the standard library text handler otherwise.
func NewLogger(cfg config.Log) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       cfg.Level.Level,
		ReplaceAttr: DefaultLoggerOptions.ReplaceAttr,
	}
	if cfg.Format == "json" {
		return slog.New(phuslog.SlogNewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

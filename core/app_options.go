package core

import (
	"log/slog"

	"github.com/caasmo/webjarcors/config"
	"github.com/caasmo/webjarcors/resource"
	"github.com/caasmo/webjarcors/router"
	"github.com/caasmo/webjarcors/topk"
	"github.com/prometheus/client_golang/prometheus"
)

type Option func(*App)

// WithConfigProvider sets the application's configuration provider.
func WithConfigProvider(p *config.Provider) Option {
	return func(a *App) {
		a.configProvider = p
	}
}

// WithLogger sets the logger implementation
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithRouter sets the router implementation
func WithRouter(r router.Router) Option {
	return func(a *App) {
		a.router = r
	}
}

func WithDispatcher(d *resource.Dispatcher) Option {
	return func(a *App) {
		a.dispatcher = d
	}
}

// WithTracker enables hot library stats.
func WithTracker(t *topk.Tracker) Option {
	return func(a *App) {
		a.tracker = t
	}
}

// WithGatherer sets where MetricsHandler reads metrics from.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(a *App) {
		a.gatherer = g
	}
}

// WithCloser registers fn to run on App.Close. nil is ignored.
func WithCloser(fn func()) Option {
	return func(a *App) {
		if fn != nil {
			a.closers = append(a.closers, fn)
		}
	}
}

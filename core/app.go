package core

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/caasmo/webjarcors/config"
	"github.com/caasmo/webjarcors/resource"
	"github.com/caasmo/webjarcors/router"
	"github.com/caasmo/webjarcors/topk"
	"github.com/caasmo/webjarcors/webjars"
	"github.com/prometheus/client_golang/prometheus"
)

// App is the application wide context shared by the HTTP handlers and
// middlewares. Handlers have App as receiver.
type App struct {
	configProvider *config.Provider
	logger         *slog.Logger
	router         router.Router
	resolver       webjars.Resolver
	dispatcher     *resource.Dispatcher
	tracker        *topk.Tracker
	gatherer       prometheus.Gatherer

	closers   []func()
	closeOnce sync.Once
}

func NewApp(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.configProvider == nil {
		return nil, errors.New("config provider is required but was not provided (use WithConfigProvider)")
	}
	if a.dispatcher == nil {
		return nil, errors.New("dispatcher is required but was not provided (use WithDispatcher)")
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if a.gatherer == nil {
		a.gatherer = prometheus.DefaultGatherer
	}
	a.resolver = webjars.NewResolver(a.Config().Webjars.Prefix)
	return a, nil
}

func (a *App) Config() *config.Config {
	return a.configProvider.Get()
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Router returns the application's router instance.
func (a *App) Router() router.Router {
	return a.router
}

func (a *App) SetRouter(r router.Router) {
	a.router = r
}

func (a *App) Resolver() webjars.Resolver {
	return a.resolver
}

func (a *App) Dispatcher() *resource.Dispatcher {
	return a.dispatcher
}

// Tracker is nil when hot library stats are off.
func (a *App) Tracker() *topk.Tracker {
	return a.tracker
}

// Close releases the resources registered with WithCloser, last registered
// first. Calls after the first are no-ops.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		for i := len(a.closers) - 1; i >= 0; i-- {
			a.closers[i]()
		}
	})
}

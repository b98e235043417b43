package webjarcors

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/caasmo/webjarcors/cache"
	"github.com/caasmo/webjarcors/cache/ristretto"
	"github.com/caasmo/webjarcors/config"
	"github.com/caasmo/webjarcors/container"
	"github.com/caasmo/webjarcors/core"
	"github.com/caasmo/webjarcors/cors"
	"github.com/caasmo/webjarcors/resource"
	"github.com/caasmo/webjarcors/router/httprouter"
	"github.com/caasmo/webjarcors/server"
	"github.com/caasmo/webjarcors/topk"
	"github.com/caasmo/webjarcors/webjars"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/do/v2"
)

// New wires the handler chain, HTTP routes and server for cfg. cfg must
// already be validated, e.g. by config.Load. Callers release the asset
// cache with App.Close once done with the server.
func New(cfg *config.Config, opts ...Option) (_ *core.App, _ *server.Server, err error) {
	s := &setup{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = NewLogger(cfg.Log)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	if s.assets == nil {
		s.assets = os.DirFS(cfg.Webjars.Root)
	}

	dispatcher, err := resource.NewDispatcher(
		resource.WithLogger(s.logger),
		resource.WithMetricsRegisterer(s.registry),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("webjarcors: creating dispatcher: %w", err)
	}

	injector := do.New()
	do.ProvideValue[*config.Config](injector, cfg)
	do.ProvideValue[*slog.Logger](injector, s.logger)
	do.ProvideValue[container.Container](injector, container.New())
	do.ProvideValue[fs.FS](injector, s.assets)

	var closeCache func()
	if cfg.Webjars.CacheLevel != "" {
		assetCache, cerr := ristretto.New[*webjars.Asset](cfg.Webjars.CacheLevel)
		if cerr != nil {
			return nil, nil, fmt.Errorf("webjarcors: creating asset cache: %w", cerr)
		}
		closeCache = assetCache.Close
		defer func() {
			if err != nil {
				assetCache.Close()
			}
		}()
		do.ProvideValue[cache.Cache[string, *webjars.Asset]](injector, assetCache)
	}

	registry := core.NewRegistry(injector)
	if cfg.Webjars.Cors {
		if err := registry.Register(cors.Name, CorsFactory); err != nil {
			return nil, nil, err
		}
	}
	if err := registry.Register(webjars.Name, WebjarsFactory); err != nil {
		return nil, nil, err
	}
	for _, ext := range s.handlers {
		if err := registry.Register(ext.name, ext.factory); err != nil {
			return nil, nil, err
		}
	}
	if err := registry.Build(dispatcher); err != nil {
		return nil, nil, err
	}

	appOpts := []core.Option{
		core.WithConfigProvider(config.NewProvider(cfg)),
		core.WithLogger(s.logger),
		core.WithDispatcher(dispatcher),
		core.WithRouter(httprouter.New()),
		core.WithGatherer(s.registry),
		core.WithCloser(closeCache),
	}
	if cfg.Stats.Activated {
		appOpts = append(appOpts, core.WithTracker(topk.New(topk.Params{
			K:          cfg.Stats.K,
			WindowSize: cfg.Stats.WindowSize,
			TickSize:   cfg.Stats.TickSize,
		})))
	}
	app, err := core.NewApp(appOpts...)
	if err != nil {
		return nil, nil, err
	}

	handler, err := route(cfg, app, s.registry)
	if err != nil {
		return nil, nil, err
	}

	for _, h := range dispatcher.Registered() {
		s.logger.Info("resource handler registered", "name", h.Name(), "priority", h.Priority(), "types", h.SupportedTypes())
	}

	return app, server.NewServer(cfg.Server, handler, s.logger), nil
}

// CorsFactory builds the allow-origin handler.
func CorsFactory(i do.Injector) (resource.Handler, error) {
	c, err := do.Invoke[container.Container](i)
	if err != nil {
		return nil, err
	}
	var opts []cors.Option
	if l, err := do.Invoke[*slog.Logger](i); err == nil {
		opts = append(opts, cors.WithLogger(l))
	}
	return cors.New(c, opts...), nil
}

// WebjarsFactory builds the asset serving handler. The cache and dev
// headers are optional.
func WebjarsFactory(i do.Injector) (resource.Handler, error) {
	c, err := do.Invoke[container.Container](i)
	if err != nil {
		return nil, err
	}
	assets, err := do.Invoke[fs.FS](i)
	if err != nil {
		return nil, err
	}

	var opts []webjars.Option
	if l, err := do.Invoke[*slog.Logger](i); err == nil {
		opts = append(opts, webjars.WithLogger(l))
	}
	if ac, err := do.Invoke[cache.Cache[string, *webjars.Asset]](i); err == nil {
		opts = append(opts, webjars.WithCache(ac))
	}
	if cfg, err := do.Invoke[*config.Config](i); err == nil && cfg.Webjars.Dev {
		opts = append(opts, webjars.WithDevHeaders())
	}
	return webjars.NewHandler(c, assets, opts...), nil
}

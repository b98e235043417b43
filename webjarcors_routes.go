package webjarcors

import (
	"net/http"

	"github.com/caasmo/webjarcors/config"
	"github.com/caasmo/webjarcors/core"
	"github.com/caasmo/webjarcors/core/prerouter"
	r "github.com/caasmo/webjarcors/router"
	"github.com/prometheus/client_golang/prometheus"
)

// route registers the endpoints on the app router and returns the root
// handler with the prerouter middlewares applied.
func route(cfg *config.Config, ap *core.App, reg prometheus.Registerer) (http.Handler, error) {
	rt := ap.Router()

	r.Read(rt, cfg.Webjars.Prefix+"/*filepath", http.HandlerFunc(ap.ResourceHandler))
	rt.Handle(http.MethodGet, config.HealthEndpoint, http.HandlerFunc(ap.HealthHandler))
	if cfg.Metrics.Activated {
		rt.Handle(http.MethodGet, cfg.Metrics.Endpoint, ap.MetricsHandler())
	}
	if cfg.Stats.Activated {
		rt.Handle(http.MethodGet, cfg.Stats.Endpoint, http.HandlerFunc(ap.StatsHandler))
	}
	rt.NotFound(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.NotFound(w, req)
	}))

	metrics, err := prerouter.NewMetrics(ap, reg)
	if err != nil {
		return nil, err
	}

	return r.NewChain(rt).
		WithMiddleware(
			prerouter.NewRequestLog(ap).Execute,
			metrics.Execute,
		).
		Handler(), nil
}

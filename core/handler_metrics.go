package core

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler serves Prometheus metrics in the standard format
// Endpoint: GET /metrics
func (a *App) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{
		ErrorLog: slogErrorLogger{a},
	})
}

// slogErrorLogger adapts the app logger to promhttp.Logger.
type slogErrorLogger struct{ a *App }

func (l slogErrorLogger) Println(v ...interface{}) {
	l.a.logger.Error("metrics: serving failed", "error", v)
}

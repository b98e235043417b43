package prerouter

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/caasmo/webjarcors/core"
	"github.com/caasmo/webjarcors/cors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultMetricName = "http_server_requests_total"
	defaultMetricHelp = "Total number of HTTP requests handled by the server, labeled by status code and whether the allow-origin header was sent."
)

// Metrics counts requests by status code and cors header presence.
type Metrics struct {
	app           *core.App
	requestsTotal *prometheus.CounterVec
}

// NewMetrics registers the request counter with reg, reusing an already
// registered identical collector.
func NewMetrics(app *core.App, reg prometheus.Registerer) (*Metrics, error) {
	counterVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: defaultMetricName,
			Help: defaultMetricHelp,
		},
		[]string{"code", "cors"},
	)
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := reg.Register(counterVec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		counterVec = existing
	}
	return &Metrics{app: app, requestsTotal: counterVec}, nil
}

// Execute is the middleware handler function that wraps the next http.Handler
// to collect metrics.
func (m *Metrics) Execute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.app.Config().Metrics.Activated {
			next.ServeHTTP(w, r)
			return
		}

		rec := core.NewResponseRecorder(w)
		next.ServeHTTP(rec, r)

		allowed := strconv.FormatBool(rec.Header().Get(cors.HeaderAllowOrigin) != "")
		m.requestsTotal.WithLabelValues(strconv.Itoa(rec.Status), allowed).Inc()
	})
}

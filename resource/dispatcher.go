package resource

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	dispatchMetricName = "resource_dispatch_total"
	dispatchMetricHelp = "Total number of resource references dispatched, labeled by resource type and result."

	resultOK        = "ok"
	resultError     = "error"
	resultNoHandler = "no_handler"
)

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger used for dispatch failures.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithMetricsRegisterer registers the dispatch counter with reg. Without it
// the counter is still maintained but not exported.
func WithMetricsRegisterer(reg prometheus.Registerer) DispatcherOption {
	return func(d *Dispatcher) {
		d.registerer = reg
	}
}

// Dispatcher owns the registered handlers and builds a chain per reference.
// Register is meant for startup; Dispatch is safe for concurrent use.
type Dispatcher struct {
	mu       sync.RWMutex
	names    map[string]struct{}
	handlers []Handler
	byType   map[Type][]Handler

	logger     *slog.Logger
	registerer prometheus.Registerer
	dispatched *prometheus.CounterVec
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(opts ...DispatcherOption) (*Dispatcher, error) {
	d := &Dispatcher{
		names:  make(map[string]struct{}),
		byType: make(map[Type][]Handler),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		dispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: dispatchMetricName,
				Help: dispatchMetricHelp,
			},
			[]string{"type", "result"},
		),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.registerer != nil {
		if err := d.registerer.Register(d.dispatched); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, fmt.Errorf("resource: registering dispatch counter: %w", err)
			}
			existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				return nil, fmt.Errorf("resource: registering dispatch counter: %w", err)
			}
			d.dispatched = existing
		}
	}

	return d, nil
}

// Register adds h to every chain of the types it supports. Handler names are
// unique within a dispatcher.
func (d *Dispatcher) Register(h Handler) error {
	if h == nil {
		panic("dispatcher handler cannot be nil")
	}
	types := h.SupportedTypes()
	if len(types) == 0 {
		return fmt.Errorf("%w: %s", ErrNoSupportedTypes, h.Name())
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.names[h.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, h.Name())
	}
	d.names[h.Name()] = struct{}{}
	d.handlers = append(d.handlers, h)

	for _, t := range types {
		list := append(slices.Clone(d.byType[t]), h)
		// Stable: equal priorities keep registration order.
		slices.SortStableFunc(list, func(a, b Handler) int {
			return cmp.Compare(a.Priority(), b.Priority())
		})
		d.byType[t] = list
	}
	return nil
}

// Handlers returns the handlers chained for t, lowest priority value first.
// The returned slice is a copy.
func (d *Dispatcher) Handlers(t Type) []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.byType[t])
}

// CanHandle reports whether any registered handler supports t.
func (d *Dispatcher) CanHandle(t Type) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byType[t]) > 0
}

// Chain builds the chain that Dispatch would run for t.
func (d *Dispatcher) Chain(t Type) (Chain, error) {
	d.mu.RLock()
	handlers := d.byType[t]
	d.mu.RUnlock()

	if len(handlers) == 0 {
		return Chain{}, fmt.Errorf("%w: %q", ErrNoHandler, t)
	}
	// The per-type slice is replaced, never mutated, on Register, so sharing
	// it with the chain is safe.
	return NewChain(handlers...), nil
}

// Dispatch runs the chain for ref. Handler errors are returned unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, ref Reference) error {
	t := ref.Type()

	chain, err := d.Chain(t)
	if err != nil {
		d.dispatched.WithLabelValues(string(t), resultNoHandler).Inc()
		return err
	}

	if err := chain.Next(ctx, ref); err != nil {
		d.dispatched.WithLabelValues(string(t), resultError).Inc()
		d.logger.Debug("resource chain failed", "type", t, "error", err)
		return err
	}

	d.dispatched.WithLabelValues(string(t), resultOK).Inc()
	return nil
}

// Registered returns all handlers in registration order.
func (d *Dispatcher) Registered() []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.handlers)
}

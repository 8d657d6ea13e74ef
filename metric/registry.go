package metric

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/c360/ontograph/errors"
)

// MetricsRegistry owns a private Prometheus registry holding the core ontograph
// metrics, the Go runtime collectors, and any collectors packages add under a
// component name.
type MetricsRegistry struct {
	prom    *prometheus.Registry
	Metrics *Metrics

	mu    sync.Mutex
	owned map[string]prometheus.Collector
}

// NewMetricsRegistry creates a registry with the core metrics already registered
func NewMetricsRegistry() *MetricsRegistry {
	r := &MetricsRegistry{
		prom:    prometheus.NewRegistry(),
		Metrics: NewMetrics(),
		owned:   make(map[string]prometheus.Collector),
	}
	r.Metrics.register(r.prom)
	r.prom.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// PrometheusRegistry returns the underlying registry, for handlers and tests
func (r *MetricsRegistry) PrometheusRegistry() *prometheus.Registry {
	return r.prom
}

// CoreMetrics returns the core metrics; nil on a nil registry so callers can skip
// recording without a separate check
func (r *MetricsRegistry) CoreMetrics() *Metrics {
	if r == nil {
		return nil
	}
	return r.Metrics
}

// Register adds a collector under component/name. Registering the same name twice,
// or a collector whose descriptors clash with an existing one, is an invalid error.
func (r *MetricsRegistry) Register(component, name string, c prometheus.Collector) error {
	key := component + "/" + name

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owned[key]; ok {
		return errors.WrapInvalid(fmt.Errorf("%s already registered", key),
			"MetricsRegistry", "Register", "duplicate metric")
	}
	if err := r.prom.Register(c); err != nil {
		var dup prometheus.AlreadyRegisteredError
		if stderrors.As(err, &dup) {
			return errors.WrapInvalid(err, "MetricsRegistry", "Register", "conflicting collector "+key)
		}
		return errors.WrapFatal(err, "MetricsRegistry", "Register", "register "+key)
	}
	r.owned[key] = c
	return nil
}

// Unregister removes a collector added with Register and reports whether it was there
func (r *MetricsRegistry) Unregister(component, name string) bool {
	key := component + "/" + name

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.owned[key]
	if !ok || !r.prom.Unregister(c) {
		return false
	}
	delete(r.owned, key)
	return true
}

package cache

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/ontograph/metric"
)

const (
	opHit    = "hit"
	opMiss   = "miss"
	opSet    = "set"
	opDelete = "delete"
	opEvict  = "evict"
)

// observer feeds every cache operation into Statistics and, when a registry was
// supplied, into Prometheus.
type observer struct {
	stats *Statistics
	ops   *prometheus.CounterVec
	size  prometheus.Gauge
}

func newObserver(registry *metric.MetricsRegistry, name string) (*observer, error) {
	o := &observer{stats: NewStatistics()}
	if registry == nil || name == "" {
		return o, nil
	}

	labels := prometheus.Labels{"cache": name}
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "ontograph",
		Subsystem:   "cache",
		Name:        "operations_total",
		Help:        "Cache operations by kind (hit, miss, set, delete, evict)",
		ConstLabels: labels,
	}, []string{"op"})
	size := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   "ontograph",
		Subsystem:   "cache",
		Name:        "entries",
		Help:        "Entries currently held by the cache",
		ConstLabels: labels,
	})

	component := "cache_" + name
	if err := registry.Register(component, "operations", ops); err != nil {
		return nil, err
	}
	if err := registry.Register(component, "entries", size); err != nil {
		registry.Unregister(component, "operations")
		return nil, err
	}
	o.ops, o.size = ops, size
	return o, nil
}

func (o *observer) record(op string) {
	switch op {
	case opHit:
		o.stats.Hit()
	case opMiss:
		o.stats.Miss()
	case opSet:
		o.stats.Set()
	case opDelete:
		o.stats.Delete()
	case opEvict:
		o.stats.Eviction()
	}
	if o.ops != nil {
		o.ops.WithLabelValues(op).Inc()
	}
}

func (o *observer) resize(n int) {
	o.stats.UpdateSize(int64(n))
	if o.size != nil {
		o.size.Set(float64(n))
	}
}

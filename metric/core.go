package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the core metrics of the graph/axiom layer
type Metrics struct {
	GraphStatements     prometheus.Gauge
	ImplicitStatements  *prometheus.CounterVec
	AxiomsTranslated    *prometheus.CounterVec
	LockWaitDuration    *prometheus.HistogramVec
	LockTimeouts        *prometheus.CounterVec
	OperationDuration   *prometheus.HistogramVec
	IdentityResolutions *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		GraphStatements: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "ontograph",
				Subsystem: "graph",
				Name:      "statements",
				Help:      "Number of statements in the managed graph",
			},
		),

		ImplicitStatements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ontograph",
				Subsystem: "search",
				Name:      "implicit_statements_total",
				Help:      "Implicit statements yielded by top-entity searchers",
			},
			[]string{"kind"},
		),

		AxiomsTranslated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ontograph",
				Subsystem: "axiom",
				Name:      "translated_total",
				Help:      "Axioms produced by translation",
			},
			[]string{"kind"},
		),

		LockWaitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ontograph",
				Subsystem: "lock",
				Name:      "wait_seconds",
				Help:      "Time spent waiting for the access lock",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"mode"},
		),

		LockTimeouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ontograph",
				Subsystem: "lock",
				Name:      "timeouts_total",
				Help:      "Bounded lock waits that expired",
			},
			[]string{"mode"},
		),

		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ontograph",
				Subsystem: "manager",
				Name:      "operation_duration_seconds",
				Help:      "Duration of manager operations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		IdentityResolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ontograph",
				Subsystem: "identity",
				Name:      "resolutions_total",
				Help:      "Anonymous identity resolutions by outcome",
			},
			[]string{"outcome"},
		),
	}
}

func (m *Metrics) register(reg prometheus.Registerer) {
	reg.MustRegister(
		m.GraphStatements,
		m.ImplicitStatements,
		m.AxiomsTranslated,
		m.LockWaitDuration,
		m.LockTimeouts,
		m.OperationDuration,
		m.IdentityResolutions,
	)
}

// ObserveOperation records the duration of a manager operation since start.
// A nil receiver is a no-op so callers need not check whether metrics are enabled.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveLockWait records a lock wait; timedOut also counts a timeout
func (m *Metrics) ObserveLockWait(mode string, waited time.Duration, timedOut bool) {
	if m == nil {
		return
	}
	m.LockWaitDuration.WithLabelValues(mode).Observe(waited.Seconds())
	if timedOut {
		m.LockTimeouts.WithLabelValues(mode).Inc()
	}
}

// AddImplicit counts implicit statements produced for a searcher kind
func (m *Metrics) AddImplicit(kind string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.ImplicitStatements.WithLabelValues(kind).Add(float64(n))
}

// AddAxioms counts translated axioms of a kind
func (m *Metrics) AddAxioms(kind string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.AxiomsTranslated.WithLabelValues(kind).Add(float64(n))
}

// SetGraphSize updates the statement gauge
func (m *Metrics) SetGraphSize(n int) {
	if m == nil {
		return
	}
	m.GraphStatements.Set(float64(n))
}

// RecordResolution counts an identity resolution outcome ("resolved" or "missing")
func (m *Metrics) RecordResolution(outcome string) {
	if m == nil {
		return
	}
	m.IdentityResolutions.WithLabelValues(outcome).Inc()
}

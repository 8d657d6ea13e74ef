// Package metric provides Prometheus-based metrics for ontograph.
//
// A MetricsRegistry owns a private prometheus.Registry with the core metrics already
// registered: graph size, implicit statements per searcher kind, translated axioms per
// axiom kind, lock waits and timeouts, operation durations and identity resolutions.
// Components such as the translation cache register their own collectors through
// Register.
//
// The helpers on *Metrics accept a nil receiver, so code paths running without metrics
// need no guards:
//
//	var m *metric.Metrics // metrics disabled
//	m.ObserveLockWait("write", waited, false) // no-op
//
// Server exposes the registry over HTTP:
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//	go func() { _ = server.Start() }()
//	defer server.Stop()
package metric

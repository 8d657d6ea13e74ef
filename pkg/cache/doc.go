// Package cache provides a generic, thread-safe cache used to memoise translated class
// expressions.
//
// Two strategies are available:
//   - simple: no eviction policy (entries are kept until deleted or cleared)
//   - lru: Least Recently Used eviction once the maximum size is exceeded
//
// Keys are content hashes of graph fragments, so entries never go stale and no
// time-based expiry is offered. Statistics are always collected; Prometheus metrics
// are optional via WithMetrics.
//
// The translator memoises class expressions under a content hash of the graph fragment
// they were built from:
//
//	c, err := cache.NewFromConfig[axiom.ClassExpression](cache.DefaultConfig(),
//		cache.WithMetrics[axiom.ClassExpression](registry, "translator"))
//	if err != nil {
//		return err
//	}
//	expr, err := cache.GetOrCompute(c, key, func() (axiom.ClassExpression, error) {
//		return build(fragment)
//	})
//
// Statistics are available from Stats() and, when WithMetrics is supplied, exported as
// ontograph_cache_operations_total{cache,op} and ontograph_cache_entries{cache}.
package cache

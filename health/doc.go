// Package health reports the health of a manager and the resources it depends on.
//
// A Status is healthy, degraded or unhealthy and may carry sub-statuses. Aggregate
// combines sub-statuses: any unhealthy child makes the parent unhealthy, otherwise any
// degraded child makes it degraded.
//
// For a manager the sub-statuses are the graph (unhealthy once closed, degraded while a
// read section cannot be entered within the lock timeout) and the store (unhealthy when
// listing fails). Error text is sanitized before it is exposed, since storage errors
// tend to carry URLs and file paths.
//
//	status := mgr.Health(ctx)
//	if status.IsUnhealthy() {
//		logger.Error("Manager unhealthy", "message", status.Message)
//	}
package health

// Package metrics exports toast store activity to Prometheus.
//
// A Collector is a toast.Observer. Attach it when building the store:
//
//	collector := metrics.New(metrics.WithNamespace("myapp"))
//	store := toast.NewStore(toast.WithObserver(collector))
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
//
// Metrics collected:
//   - sonner_events_total: store mutations by type and kind
//   - sonner_active_toasts: notifications currently in the registry
//   - sonner_promises_total: settled promises by outcome
package metrics

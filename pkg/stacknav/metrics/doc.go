// Package metrics records dispatch metrics for a store.
//
// Components take a Recorder. NoopRecorder is the default and does nothing;
// PrometheusRecorder exports counters, a latency histogram and the current
// stack depth:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	st, err := store.New(reduce, metrics.Middleware(rec, selectNav))
//	http.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics

// Package metrics provides Prometheus instrumentation for bytesink components.
//
// Components opt in through their metrics-enabled constructors; the
// registry here only defines the instruments.
//
// # Quick Start
//
// Create an instrumented sink and expose metrics via HTTP:
//
//	s := sink.NewWithMetrics[[]byte](sink.WrapWriter(file), "audit_log")
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//	s := sink.NewWithConfigAndMetrics[[]byte](w, "audit_log", config)
//
// # Available Metrics
//
// Sink metrics (label: sink_name, plus operation where noted):
//
//   - bytesink_sink_items_submitted_total: items accepted by the sink
//   - bytesink_sink_bytes_submitted_total: bytes of items accepted
//   - bytesink_sink_flushes_total: completed flushes
//   - bytesink_sink_closes_total: completed closes
//   - bytesink_sink_errors_total: writer errors surfaced (by operation)
//   - bytesink_sink_suspensions_total: operations that suspended (by operation)
//   - bytesink_sink_pending_bytes: unwritten bytes of the in-flight item
//
// Remote writer metrics (label: key):
//
//   - bytesink_remote_appends_total: completed append commands
//   - bytesink_remote_append_errors_total: failed append commands
package metrics

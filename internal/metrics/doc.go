// Package metrics provides build metrics for photofolio.
//
// Components receive a Recorder. NoopRecorder is the default and does nothing;
// the preview server swaps in a PrometheusRecorder and exposes it on /metrics
// when preview.metrics is enabled:
//
//	reg := prometheus.NewRegistry()
//	gen := build.NewGenerator(cfg).WithRecorder(metrics.NewPrometheusRecorder(reg))
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics

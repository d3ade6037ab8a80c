// Package metrics records scan, render, build and HTTP measurements.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics never need nil checks at call sites:
//
//	pipeline := &render.Pipeline{Metrics: metrics.NoopRecorder{}}
//
// The serve command swaps in a PrometheusRecorder and exposes its registry
// on /metrics via HTTPHandler.
package metrics

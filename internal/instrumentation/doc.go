// Package instrumentation sets up OpenTelemetry metrics and tracing.
//
// Metrics flow through the OTel Prometheus exporter into the default
// Prometheus registry, where the metrics server exposes them for
// scraping. Tracing is optional (stdout exporter, debug only) since a
// once-a-day batch run has no collector to ship spans to.
//
// When instrumentation is disabled the Provider hands out no-op
// recorders, so call sites never need to branch.
package instrumentation

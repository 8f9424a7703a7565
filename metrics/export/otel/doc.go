// Package otel provides OpenTelemetry metric exporter bindings for
// session counters.
//
// [NewOTelExporter] registers an Int64ObservableCounter per counter and a
// single callback that reads [sessionkit.Session.MetricsSnapshot] on each
// collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate session state.
package otel

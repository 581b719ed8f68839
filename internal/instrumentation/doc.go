// Package instrumentation provides OpenTelemetry metrics, tracing and
// audit logging for voxsched.
//
// The Provider wires exporters (Prometheus by default, OTLP or stdout via
// environment variables) and exposes a Metrics recorder for tool
// invocations, calendar API calls and slot searches. Event writes go
// through the AuditLogger, which hashes calendar ids unless PII logging is
// explicitly enabled.
package instrumentation

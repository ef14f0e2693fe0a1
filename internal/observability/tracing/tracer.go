// Package tracing provides OpenTelemetry tracing integration for HTTP request handling.
// It propagates W3C Trace Context from inbound requests and exposes the trace ID
// to clients and log entries for correlation.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the storyfeed application.
var tracer = otel.Tracer("storyfeed")

// GetTracer returns the global tracer for creating spans.
// This tracer can be used throughout the application to create new spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}

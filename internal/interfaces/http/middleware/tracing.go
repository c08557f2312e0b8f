// Package middleware provides HTTP middleware for the warehouse API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/warehouse/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request via otelgin.
// Spans are named after the matched route, e.g. "/api/v1/shipments/:id/sign".
func Tracing(serviceName string, opts ...otelgin.Option) gin.HandlerFunc {
	return otelgin.Middleware(serviceName, opts...)
}

// TraceIDHeader echoes the trace a response was served under
const TraceIDHeader = "X-Trace-ID"

// SpanAttributes must run after Tracing. It tags the server span with the
// request ID, echoes the trace ID and marks the span failed on 5xx responses.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}
		if id := c.GetString("request_id"); id != "" {
			span.SetAttributes(attribute.String("request_id", id))
		}
		if traceID := telemetry.GetTraceID(c.Request.Context()); traceID != "" {
			c.Header(TraceIDHeader, traceID)
		}
		if key := c.GetHeader(IdempotencyKeyHeader); key != "" {
			span.SetAttributes(attribute.Bool("idempotent", true))
		}

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		if len(c.Errors) > 0 {
			span.SetAttributes(attribute.StringSlice("errors", c.Errors.Errors()))
		}
	}
}

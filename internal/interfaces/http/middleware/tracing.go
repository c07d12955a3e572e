package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// TracerProvider is optional; the global provider is used when nil.
	TracerProvider trace.TracerProvider
}

// TracingWithConfig returns OpenTelemetry tracing middleware. Spans are named
// after the route pattern, tagged with the request ID, and marked as errors
// for 5xx responses.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	var opts []otelgin.Option
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgin.WithTracerProvider(cfg.TracerProvider))
	}
	// otelgin runs the rest of the chain inside its span
	return otelgin.Middleware(cfg.ServiceName, opts...)
}

// SpanEnricher tags the active span with request and caller attributes and
// marks server errors. Mount it after the JWT middleware.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		if requestID := c.GetString(RequestIDKey); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		if caller, ok := GetCaller(c); ok {
			span.SetAttributes(
				attribute.String("company_id", caller.CompanyID.String()),
				attribute.String("user_id", caller.UserID.String()),
				attribute.Int("role_id", int(caller.Role)),
			)
		}

		c.Next()

		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/warehouse/backend/internal/infrastructure/telemetry"
)

// Profiling attaches method, route and controller labels to the CPU
// samples taken while a request runs. Health checks are skipped.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || strings.HasSuffix(route, "/health") {
			c.Next()
			return
		}

		labels := map[string]string{
			telemetry.ProfilingLabelMethod: c.Request.Method,
			telemetry.ProfilingLabelRoute:  route,
		}
		if controller := controllerFromRoute(route); controller != "" {
			labels[telemetry.ProfilingLabelController] = controller
		}

		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// controllerFromRoute returns the first static segment after the API prefix:
// "/api/v1/shipments/:id/sign" -> "shipments"
func controllerFromRoute(route string) string {
	for _, part := range strings.Split(route, "/") {
		if part == "" || part == "api" || isVersionSegment(part) || strings.HasPrefix(part, ":") {
			continue
		}
		return part
	}
	return ""
}

// isVersionSegment matches v1, v2, ...
func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

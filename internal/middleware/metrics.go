package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/utec-virtual/recursos-api/internal/service"
)

const metricsPath = "/metrics"

// Metrics observes every handled request on the shared registry. The
// route template keeps the path label bounded; requests that match no
// route are collapsed into one label instead of using the raw URL.
func Metrics(metrics *service.MetricsService) gin.HandlerFunc {
	if metrics == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == metricsPath {
			c.Next()
			return
		}
		if route == "" {
			route = "unmatched"
		}
		start := time.Now()
		c.Next()
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

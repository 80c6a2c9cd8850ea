package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/utec-virtual/recursos-api/internal/service"
)

// ReadyProbe reports whether a backing dependency can serve traffic.
type ReadyProbe func(ctx context.Context) error

// MetricsHandler serves the operational endpoints: liveness, readiness
// and the Prometheus scrape target.
type MetricsHandler struct {
	metrics *service.MetricsService
	ready   ReadyProbe
}

// NewMetricsHandler constructs the handler. A nil probe makes Ready
// report ready unconditionally.
func NewMetricsHandler(metrics *service.MetricsService, ready ReadyProbe) *MetricsHandler {
	if ready == nil {
		ready = func(context.Context) error { return nil }
	}
	return &MetricsHandler{metrics: metrics, ready: ready}
}

// Prometheus serves the metrics registry in Prometheus text format.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health is the liveness endpoint. It answers as long as the process
// accepts requests; it does not touch any dependency.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready is the readiness endpoint. It runs the dependency probe so a
// broken database connection takes the instance out of rotation.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if err := h.ready(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

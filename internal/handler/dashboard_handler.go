package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/utec-virtual/recursos-api/internal/service"
	"github.com/utec-virtual/recursos-api/pkg/response"
)

// DashboardHandler exposes catalogue-wide statistics.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Stats godoc
// @Summary Dashboard statistics
// @Description Totals and per-dimension breakdowns over the whole catalogue
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/utec-virtual/recursos-api/internal/dto"
	"github.com/utec-virtual/recursos-api/internal/middleware"
	"github.com/utec-virtual/recursos-api/internal/service"
	appErrors "github.com/utec-virtual/recursos-api/pkg/errors"
	"github.com/utec-virtual/recursos-api/pkg/response"
)

// ReportHandler renders report exports from a caller-supplied resource
// collection.
type ReportHandler struct {
	service *service.ReportService
	metrics *service.MetricsService
}

// NewReportHandler creates a new handler.
func NewReportHandler(svc *service.ReportService, metrics *service.MetricsService) *ReportHandler {
	return &ReportHandler{service: svc, metrics: metrics}
}

// Export godoc
// @Summary Export a resource report
// @Description Filter the supplied resources and return the rendered report as a download
// @Tags Reports
// @Accept json
// @Produce application/octet-stream
// @Param payload body dto.ExportRequest true "Resources, filters and optional format"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /reports/export [post]
func (h *ReportHandler) Export(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "payload inválido: se espera un arreglo de recursos"))
		return
	}
	if req.Resources == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "resources es requerido"))
		return
	}

	artifact, err := h.service.Export(req, claims.User.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.metrics != nil {
		format := req.Format
		if format == "" {
			format = dto.FormatXLSX
		}
		h.metrics.RecordExport(string(format))
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Content)
}

package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utec-virtual/recursos-api/internal/dto"
	"github.com/utec-virtual/recursos-api/internal/middleware"
	"github.com/utec-virtual/recursos-api/internal/models"
	"github.com/utec-virtual/recursos-api/internal/service"
	"github.com/utec-virtual/recursos-api/pkg/export"
)

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func newReportHandlerTest() *ReportHandler {
	svc := service.NewReportService(
		export.NewXLSXExporter(),
		export.NewPDFExporter(),
		export.NewCSVExporter(),
		service.ReportBranding{
			Institution: "Universidad Tecnológica de El Salvador",
			OrgUnit:     "UTEC Virtual",
			Title:       "Reporte de Recursos Educativos",
		},
		nil,
	)
	return NewReportHandler(svc, nil)
}

func sessionClaims(name string) *models.SessionClaims {
	return &models.SessionClaims{
		User: models.SessionUser{ID: "u1", Username: "mperez", Name: name},
	}
}

func TestReportHandlerExportUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportHandlerTest()

	payload, _ := json.Marshal(dto.ExportRequest{Resources: []models.Resource{}})
	c, w := newGinContext(http.MethodPost, "/reports/export", payload)

	handler.Export(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReportHandlerExportMissingResources(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportHandlerTest()

	c, w := newGinContext(http.MethodPost, "/reports/export", []byte(`{"format":"csv"}`))
	c.Set(middleware.ContextUserKey, sessionClaims("María Pérez"))

	handler.Export(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "resources")
}

func TestReportHandlerExportMalformedPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportHandlerTest()

	c, w := newGinContext(http.MethodPost, "/reports/export", []byte(`{"resources":"no"}`))
	c.Set(middleware.ContextUserKey, sessionClaims("María Pérez"))

	handler.Export(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandlerExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportHandlerTest()

	payload, _ := json.Marshal(dto.ExportRequest{
		Resources: []models.Resource{
			{Title: "Guía Genially", Platform: "Genially", Faculty: "Informática", Published: true},
		},
		Format: dto.FormatCSV,
	})
	c, w := newGinContext(http.MethodPost, "/reports/export", payload)
	c.Set(middleware.ContextUserKey, sessionClaims("María Pérez"))

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

	disposition := w.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, "attachment; filename=reporte_recursos_"))
	assert.True(t, strings.HasSuffix(disposition, ".csv"))

	body := w.Body.String()
	assert.Contains(t, body, "Guía Genially")
	assert.Contains(t, body, "Generado por,María Pérez")
}

func TestReportHandlerExportEmptyCollection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportHandlerTest()

	c, w := newGinContext(http.MethodPost, "/reports/export", []byte(`{"resources":[],"format":"csv"}`))
	c.Set(middleware.ContextUserKey, sessionClaims("admin"))

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Total de recursos,0")
}

func TestReportHandlerExportUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportHandlerTest()

	c, w := newGinContext(http.MethodPost, "/reports/export", []byte(`{"resources":[],"format":"docx"}`))
	c.Set(middleware.ContextUserKey, sessionClaims("admin"))

	handler.Export(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "docx")
}

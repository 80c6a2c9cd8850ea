package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/utec-virtual/recursos-api/internal/dto"
	"github.com/utec-virtual/recursos-api/internal/middleware"
	"github.com/utec-virtual/recursos-api/internal/service"
	appErrors "github.com/utec-virtual/recursos-api/pkg/errors"
	"github.com/utec-virtual/recursos-api/pkg/response"
)

// TaxonomyHandler wires the four classification catalogues to HTTP.
type TaxonomyHandler struct {
	service *service.TaxonomyService
}

// NewTaxonomyHandler creates a new handler.
func NewTaxonomyHandler(svc *service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{service: svc}
}

func parseTaxonomyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "identificador inválido"))
		return 0, false
	}
	return id, true
}

func actorID(c *gin.Context) (string, bool) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return "", false
	}
	return claims.User.ID, true
}

// ListPlatforms godoc
// @Summary List platforms
// @Tags Taxonomy
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /platforms [get]
func (h *TaxonomyHandler) ListPlatforms(c *gin.Context) {
	items, err := h.service.ListPlatforms(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// CreatePlatform godoc
// @Summary Create a platform
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param payload body dto.PlatformPayload true "Platform payload"
// @Success 201 {object} response.Envelope
// @Router /platforms [post]
func (h *TaxonomyHandler) CreatePlatform(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var payload dto.PlatformPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid platform payload"))
		return
	}
	item, err := h.service.CreatePlatform(c.Request.Context(), actor, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UpdatePlatform godoc
// @Summary Update a platform
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param id path int true "Platform ID"
// @Param payload body dto.PlatformPayload true "Platform payload"
// @Success 200 {object} response.Envelope
// @Router /platforms/{id} [put]
func (h *TaxonomyHandler) UpdatePlatform(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := parseTaxonomyID(c)
	if !ok {
		return
	}
	var payload dto.PlatformPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid platform payload"))
		return
	}
	item, err := h.service.UpdatePlatform(c.Request.Context(), actor, id, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// SetPlatformStatus godoc
// @Summary Toggle a platform
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param id path int true "Platform ID"
// @Param payload body dto.StatusPayload true "Status payload"
// @Success 204 "updated"
// @Router /platforms/{id}/status [patch]
func (h *TaxonomyHandler) SetPlatformStatus(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := parseTaxonomyID(c)
	if !ok {
		return
	}
	var payload dto.StatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.IsActive == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "is_active es requerido"))
		return
	}
	if err := h.service.SetPlatformActive(c.Request.Context(), actor, id, *payload.IsActive); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeletePlatform godoc
// @Summary Delete a platform
// @Tags Taxonomy
// @Produce json
// @Param id path int true "Platform ID"
// @Success 204 "deleted"
// @Router /platforms/{id} [delete]
func (h *TaxonomyHandler) DeletePlatform(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := parseTaxonomyID(c)
	if !ok {
		return
	}
	if err := h.service.DeletePlatform(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListFaculties godoc
// @Summary List faculties
// @Tags Taxonomy
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /faculties [get]
func (h *TaxonomyHandler) ListFaculties(c *gin.Context) {
	items, err := h.service.ListFaculties(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// CreateFaculty godoc
// @Summary Create a faculty
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param payload body dto.FacultyPayload true "Faculty payload"
// @Success 201 {object} response.Envelope
// @Router /faculties [post]
func (h *TaxonomyHandler) CreateFaculty(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var payload dto.FacultyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid faculty payload"))
		return
	}
	item, err := h.service.CreateFaculty(c.Request.Context(), actor, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateFaculty godoc
// @Summary Update a faculty
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param id path int true "Faculty ID"
// @Param payload body dto.FacultyPayload true "Faculty payload"
// @Success 200 {object} response.Envelope
// @Router /faculties/{id} [put]
func (h *TaxonomyHandler) UpdateFaculty(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := parseTaxonomyID(c)
	if !ok {
		return
	}
	var payload dto.FacultyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid faculty payload"))
		return
	}
	item, err := h.service.UpdateFaculty(c.Request.Context(), actor, id, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// SetFacultyStatus godoc
// @Summary Toggle a faculty
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param id path int true "Faculty ID"
// @Param payload body dto.StatusPayload true "Status payload"
// @Success 204 "updated"
// @Router /faculties/{id}/status [patch]
func (h *TaxonomyHandler) SetFacultyStatus(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := parseTaxonomyID(c)
	if !ok {
		return
	}
	var payload dto.StatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.IsActive == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "is_active es requerido"))
		return
	}
	if err := h.service.SetFacultyActive(c.Request.Context(), actor, id, *payload.IsActive); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteFaculty godoc
// @Summary Delete a faculty
// @Tags Taxonomy
// @Produce json
// @Param id path int true "Faculty ID"
// @Success 204 "deleted"
// @Router /faculties/{id} [delete]
func (h *TaxonomyHandler) DeleteFaculty(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := parseTaxonomyID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteFaculty(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListCycles godoc
// @Summary List academic cycles
// @Tags Taxonomy
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cycles [get]
func (h *TaxonomyHandler) ListCycles(c *gin.Context) {
	items, err := h.service.ListCycles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// CreateCycle godoc
// @Summary Create an academic cycle
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param payload body dto.CyclePayload true "Cycle payload"
// @Success 201 {object} response.Envelope
// @Router /cycles [post]
func (h *TaxonomyHandler) CreateCycle(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var payload dto.CyclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cycle payload"))
		return
	}
	item, err := h.service.CreateCycle(c.Request.Context(), actor, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateCycle godoc
// @Summary Update an academic cycle
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param id path int true "Cycle ID"
// @Param payload body dto.CyclePayload true "Cycle payload"
// @Success 200 {object} response.Envelope
// @Router /cycles/{id} [put]
func (h *TaxonomyHandler) UpdateCycle(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := parseTaxonomyID(c)
	if !ok {
		return
	}
	var payload dto.CyclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cycle payload"))
		return
	}
	item, err := h.service.UpdateCycle(c.Request.Context(), actor, id, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// SetCycleStatus godoc
// @Summary Toggle an academic cycle
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param id path int true "Cycle ID"
// @Param payload body dto.StatusPayload true "Status payload"
// @Success 204 "updated"
// @Router /cycles/{id}/status [patch]
func (h *TaxonomyHandler) SetCycleStatus(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := parseTaxonomyID(c)
	if !ok {
		return
	}
	var payload dto.StatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.IsActive == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "is_active es requerido"))
		return
	}
	if err := h.service.SetCycleActive(c.Request.Context(), actor, id, *payload.IsActive); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteCycle godoc
// @Summary Delete an academic cycle
// @Tags Taxonomy
// @Produce json
// @Param id path int true "Cycle ID"
// @Success 204 "deleted"
// @Router /cycles/{id} [delete]
func (h *TaxonomyHandler) DeleteCycle(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := parseTaxonomyID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCycle(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListResourceTypes godoc
// @Summary List resource types
// @Tags Taxonomy
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /resource-types [get]
func (h *TaxonomyHandler) ListResourceTypes(c *gin.Context) {
	items, err := h.service.ListResourceTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// CreateResourceType godoc
// @Summary Create a resource type
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param payload body dto.ResourceTypePayload true "Resource type payload"
// @Success 201 {object} response.Envelope
// @Router /resource-types [post]
func (h *TaxonomyHandler) CreateResourceType(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var payload dto.ResourceTypePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid resource type payload"))
		return
	}
	item, err := h.service.CreateResourceType(c.Request.Context(), actor, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateResourceType godoc
// @Summary Update a resource type
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param id path int true "Resource type ID"
// @Param payload body dto.ResourceTypePayload true "Resource type payload"
// @Success 200 {object} response.Envelope
// @Router /resource-types/{id} [put]
func (h *TaxonomyHandler) UpdateResourceType(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := parseTaxonomyID(c)
	if !ok {
		return
	}
	var payload dto.ResourceTypePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid resource type payload"))
		return
	}
	item, err := h.service.UpdateResourceType(c.Request.Context(), actor, id, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// SetResourceTypeStatus godoc
// @Summary Toggle a resource type
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param id path int true "Resource type ID"
// @Param payload body dto.StatusPayload true "Status payload"
// @Success 204 "updated"
// @Router /resource-types/{id}/status [patch]
func (h *TaxonomyHandler) SetResourceTypeStatus(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := parseTaxonomyID(c)
	if !ok {
		return
	}
	var payload dto.StatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.IsActive == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "is_active es requerido"))
		return
	}
	if err := h.service.SetResourceTypeActive(c.Request.Context(), actor, id, *payload.IsActive); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteResourceType godoc
// @Summary Delete a resource type
// @Tags Taxonomy
// @Produce json
// @Param id path int true "Resource type ID"
// @Success 204 "deleted"
// @Router /resource-types/{id} [delete]
func (h *TaxonomyHandler) DeleteResourceType(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := parseTaxonomyID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteResourceType(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

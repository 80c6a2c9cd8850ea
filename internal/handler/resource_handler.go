package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/utec-virtual/recursos-api/internal/middleware"
	"github.com/utec-virtual/recursos-api/internal/models"
	"github.com/utec-virtual/recursos-api/internal/service"
	appErrors "github.com/utec-virtual/recursos-api/pkg/errors"
	"github.com/utec-virtual/recursos-api/pkg/response"
)

// ResourceHandler wires HTTP endpoints to the resource service.
type ResourceHandler struct {
	service *service.ResourceService
}

// NewResourceHandler creates a new handler.
func NewResourceHandler(svc *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: svc}
}

// ListOwn godoc
// @Summary List own resources
// @Tags Resources
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /resources [get]
func (h *ResourceHandler) ListOwn(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	resources, err := h.service.ListOwn(c.Request.Context(), claims.User.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resources, nil)
}

// ListAll godoc
// @Summary List all resources
// @Description List every resource regardless of owner
// @Tags Resources
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /resources/all [get]
func (h *ResourceHandler) ListAll(c *gin.Context) {
	resources, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resources, nil)
}

// Get godoc
// @Summary Get an owned resource
// @Tags Resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /resources/{id} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	resource, err := h.service.Get(c.Request.Context(), c.Param("id"), claims.User.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resource, nil)
}

// Create godoc
// @Summary Create a resource
// @Tags Resources
// @Accept json
// @Produce json
// @Param payload body models.ResourceFields true "Resource payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /resources [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var fields models.ResourceFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid resource payload"))
		return
	}

	resource, err := h.service.Create(c.Request.Context(), claims.User.ID, fields)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resource)
}

// Update godoc
// @Summary Update an owned resource
// @Tags Resources
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Param payload body models.ResourceFields true "Resource payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /resources/{id} [put]
func (h *ResourceHandler) Update(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var fields models.ResourceFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid resource payload"))
		return
	}

	resource, err := h.service.Update(c.Request.Context(), c.Param("id"), claims.User.ID, fields)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resource, nil)
}

// Delete godoc
// @Summary Delete an owned resource
// @Description Soft delete; requires the coordinador or superadmin role
// @Tags Resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 204 "deleted"
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /resources/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	meta := models.RequestMeta{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), claims.User.ID, meta); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

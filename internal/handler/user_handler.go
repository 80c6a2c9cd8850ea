package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/utec-virtual/recursos-api/internal/dto"
	"github.com/utec-virtual/recursos-api/internal/models"
	"github.com/utec-virtual/recursos-api/internal/service"
	appErrors "github.com/utec-virtual/recursos-api/pkg/errors"
	"github.com/utec-virtual/recursos-api/pkg/response"
)

// UserHandler wires the superadmin account administration endpoints.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new handler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Param search query string false "Search by username or name"
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := models.UserFilter{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}

	users, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users, pagination)
}

// Get godoc
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// Update godoc
// @Summary Update a user's profile
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param payload body dto.UserUpdatePayload true "Profile payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var payload dto.UserUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid user payload"))
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), actor, c.Param("id"), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// UpdatePassword godoc
// @Summary Replace a user's password
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param payload body dto.PasswordPayload true "Password payload"
// @Success 204 "updated"
// @Failure 404 {object} response.Envelope
// @Router /users/{id}/password [put]
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var payload dto.PasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid password payload"))
		return
	}

	if err := h.service.UpdatePassword(c.Request.Context(), actor, c.Param("id"), payload); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AssignRole godoc
// @Summary Assign a role
// @Description Replace the user's role with the given one
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param payload body dto.RolePayload true "Role payload"
// @Success 204 "assigned"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id}/role [put]
func (h *UserHandler) AssignRole(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var payload dto.RolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid role payload"))
		return
	}

	if err := h.service.AssignRole(c.Request.Context(), actor, c.Param("id"), payload); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetStatus godoc
// @Summary Toggle a user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param payload body dto.StatusPayload true "Status payload"
// @Success 204 "updated"
// @Failure 404 {object} response.Envelope
// @Router /users/{id}/status [patch]
func (h *UserHandler) SetStatus(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var payload dto.StatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.IsActive == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "is_active es requerido"))
		return
	}

	if err := h.service.SetActive(c.Request.Context(), actor, c.Param("id"), *payload.IsActive); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Soft delete a user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 204 "deleted"
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListRoles godoc
// @Summary List roles
// @Description Return the fixed role catalogue
// @Tags Users
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roles [get]
func (h *UserHandler) ListRoles(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.ListRoles(), nil)
}

// BulkImport godoc
// @Summary Bulk import users from CSV
// @Description Upload a CSV with username, password, email, name and role columns
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /users/bulk [post]
func (h *UserHandler) BulkImport(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "archivo CSV requerido"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "no se pudo leer el archivo"))
		return
	}
	defer file.Close()

	results, err := h.service.BulkImport(c.Request.Context(), actor, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/utec-virtual/recursos-api/internal/middleware"
	"github.com/utec-virtual/recursos-api/internal/models"
	"github.com/utec-virtual/recursos-api/internal/service"
	appErrors "github.com/utec-virtual/recursos-api/pkg/errors"
	"github.com/utec-virtual/recursos-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service and owns the
// session cookie contract: httpOnly, SameSite Lax, secure only when
// the deployment terminates TLS.
type AuthHandler struct {
	service *service.AuthService
	metrics *service.MetricsService
	cookie  middleware.CookieSettings
	ttl     time.Duration
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, metrics *service.MetricsService, cookie middleware.CookieSettings, ttl time.Duration) *AuthHandler {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &AuthHandler{service: svc, metrics: metrics, cookie: cookie, ttl: ttl}
}

func (h *AuthHandler) recordLogin(outcome string) {
	if h.metrics != nil {
		h.metrics.RecordLogin(outcome)
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.ttl.Seconds()), "/", "", h.cookie.Secure, true)
}

// Register godoc
// @Summary Register a new account
// @Description Create an account and start a session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, _, err := h.service.IssueSession(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.setSessionCookie(c, token)

	response.Created(c, models.SessionResponse{
		User: models.SessionUser{ID: user.ID, Email: user.Email, Username: user.Username, Name: user.Name},
		Role: user.RoleLabel(),
	})
}

// Login godoc
// @Summary Authenticate user
// @Description Authenticate by username and password, set session cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	user, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.recordLogin("failure")
		response.Error(c, err)
		return
	}

	token, _, err := h.service.IssueSession(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.setSessionCookie(c, token)
	h.recordLogin("success")

	response.JSON(c, http.StatusOK, models.SessionResponse{
		User: models.SessionUser{ID: user.ID, Email: user.Email, Username: user.Username, Name: user.Name},
		Role: user.RoleLabel(),
	}, nil)
}

// Logout godoc
// @Summary End the current session
// @Description Clear the session cookie and revoke the session record
// @Tags Authentication
// @Produce json
// @Success 204 "session ended"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// The cookie is cleared whether or not a valid session came in.
	middleware.ClearSessionCookie(c, h.cookie)

	if claims, ok := middleware.CurrentClaims(c); ok {
		meta := models.RequestMeta{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
		if err := h.service.RevokeSession(c.Request.Context(), claims, meta); err != nil {
			response.Error(c, err)
			return
		}
	}

	response.NoContent(c)
}

// Me godoc
// @Summary Current session
// @Description Return the authenticated identity with its role label
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	res, err := h.service.CurrentSession(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/utec-virtual/recursos-api/internal/models"
	"github.com/utec-virtual/recursos-api/internal/service"
	appErrors "github.com/utec-virtual/recursos-api/pkg/errors"
	"github.com/utec-virtual/recursos-api/pkg/response"
)

// ContextUserKey is the gin context key storing session claims.
const ContextUserKey = "currentUser"

// CookieSettings describes the session cookie the middleware reads and
// clears.
type CookieSettings struct {
	Name   string
	Secure bool
}

// ClearSessionCookie expires the session cookie on the response.
func ClearSessionCookie(c *gin.Context, cookie CookieSettings) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, true)
}

// Session protects routes by requiring a valid session cookie. A
// missing, malformed, expired or revoked session yields the same
// authentication failure; expired tokens additionally clear the stale
// cookie.
func Session(authService *service.AuthService, cookie CookieSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookie.Name)
		if err != nil || token == "" {
			response.Error(c, appErrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		claims, err := authService.ValidateSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				ClearSessionCookie(c, cookie)
			}
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// OptionalSession attaches claims when a valid cookie is present but
// never blocks the request. Logout uses it: clearing a cookie must not
// require one.
func OptionalSession(authService *service.AuthService, cookie CookieSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookie.Name)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := authService.ValidateSession(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// CurrentClaims extracts the session claims set by Session.
func CurrentClaims(c *gin.Context) (*models.SessionClaims, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.SessionClaims)
	return claims, ok
}

package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/utec-virtual/recursos-api/internal/service"
	appErrors "github.com/utec-virtual/recursos-api/pkg/errors"
	"github.com/utec-virtual/recursos-api/pkg/response"
)

// RequireSuperadmin gates administration routes. The role is resolved
// against the database on every request so revoking superadmin takes
// effect immediately.
func RequireSuperadmin(access *service.AccessService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		isSuperadmin, err := access.IsSuperadmin(c.Request.Context(), claims.User.ID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if !isSuperadmin {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "requiere rol superadmin"))
			c.Abort()
			return
		}

		c.Next()
	}
}

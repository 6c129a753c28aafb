package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/rafaelsantos7520/draymodas/services"
	"github.com/rafaelsantos7520/draymodas/utils"
	"github.com/sirupsen/logrus"
)

const AdminTokenCookie = "admin_token"

// AdminLookup confirms that a token's admin still exists.
type AdminLookup interface {
	GetAdmin(ctx context.Context, id uuid.UUID) (*models.Admin, error)
}

// AdminAuthMiddleware validates the admin JWT from the admin_token cookie or
// the Authorization header. With a nil lookup the claims are trusted as is.
func AdminAuthMiddleware(jwt *services.JWTService, admins AdminLookup) gin.HandlerFunc {
	log := logrus.WithField("component", "auth")

	return func(c *gin.Context) {
		// Get token from cookie first, then Authorization header
		token, err := c.Cookie(AdminTokenCookie)
		if err != nil || token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - no token provided"))
				return
			}
			token, err = utils.BearerToken(authHeader)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - invalid token format"))
				return
			}
		}

		claims, err := jwt.VerifyAdminJWT(token)
		if err != nil {
			log.WithError(err).Debug("invalid admin token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - invalid token"))
			return
		}

		adminID, err := uuid.Parse(claims.AdminID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - invalid token"))
			return
		}

		role := claims.Role
		if admins != nil {
			admin, err := admins.GetAdmin(c.Request.Context(), adminID)
			if err != nil {
				if utils.HTTPStatus(err) == http.StatusNotFound {
					c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized - admin not found"))
					return
				}
				utils.RespondError(c, err)
				c.Abort()
				return
			}
			role = admin.Role
		}

		c.Set("adminID", adminID)
		c.Set("adminEmail", claims.Email)
		c.Set("adminRole", role)

		c.Next()
	}
}

// RequireSuperAdminMiddleware checks if the admin is a super admin
func RequireSuperAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminRole, exists := c.Get("adminRole")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - role not found"))
			return
		}

		if adminRole != models.RoleSuperAdmin {
			logrus.WithField("component", "auth").Warn("non-super-admin attempted restricted action")
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse(c, "Forbidden - super admin access required"))
			return
		}

		c.Next()
	}
}

// AdminIDFromContext returns the authenticated admin id set by AdminAuthMiddleware.
func AdminIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get("adminID")
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

package admin_auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelsantos7520/draymodas/config"
	"github.com/rafaelsantos7520/draymodas/middleware"
	"github.com/rafaelsantos7520/draymodas/models"
)

// AdminLogout godoc
// @Summary Logout admin
// @Description Clears the admin_token cookie. Tokens stay valid until they expire.
// @Tags Admin - Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse
// @Router /api/v1/admin/auth/logout [post]
func AdminLogout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminTokenCookie, "", -1, "/", "", config.Get().IsProduction(), true)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logout successful", nil))
}

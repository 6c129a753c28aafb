package admin_auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelsantos7520/draymodas/config"
	"github.com/rafaelsantos7520/draymodas/middleware"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/rafaelsantos7520/draymodas/services"
	"github.com/rafaelsantos7520/draymodas/utils"
)

// GetAdminMe godoc
// @Summary Get current admin profile
// @Description Returns the logged-in admin's profile. Used to check the session on page reload
// @Tags Admin - Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.AdminResponse}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Router /api/v1/admin/auth/me [get]
func GetAdminMe(c *gin.Context) {
	adminID, ok := middleware.AdminIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	admin, err := services.GetAdminAuthService().GetAdmin(ctx, adminID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Admin profile retrieved", admin.ToResponse()))
}

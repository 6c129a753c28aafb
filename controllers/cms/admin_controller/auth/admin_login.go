package admin_auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelsantos7520/draymodas/config"
	"github.com/rafaelsantos7520/draymodas/middleware"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/rafaelsantos7520/draymodas/services"
	"github.com/rafaelsantos7520/draymodas/utils"
	"github.com/sirupsen/logrus"
)

// AdminLogin godoc
// @Summary Login as admin
// @Description Authenticate admin with email and password. Returns a JWT and sets it in the admin_token cookie
// @Tags Admin - Auth
// @Accept json
// @Produce json
// @Param loginRequest body models.AdminLoginRequest true "Email and password"
// @Success 200 {object} models.ApiResponse{data=models.AdminLoginResponse}
// @Failure 400 {object} models.ApiResponse "Invalid request"
// @Failure 401 {object} models.ApiResponse "Invalid credentials"
// @Router /api/v1/admin/auth/login [post]
func AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request"))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	resp, err := services.GetAdminAuthService().Login(ctx, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AdminTokenCookie,
		resp.Token,
		int(services.GetJWTService().TTL().Seconds()),
		"/",
		"",
		config.Get().IsProduction(),
		true,
	)

	logrus.WithFields(logrus.Fields{"component": "auth", "admin_id": resp.Admin.ID}).Info("admin logged in")
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Login successful", resp))
}

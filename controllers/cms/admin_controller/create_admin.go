package admin_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelsantos7520/draymodas/config"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/rafaelsantos7520/draymodas/services"
	"github.com/rafaelsantos7520/draymodas/utils"
	"github.com/sirupsen/logrus"
)

// CreateAdmin godoc
// @Summary Create an admin
// @Description Register another admin. Super admin only.
// @Tags Admin - Management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param admin body models.CreateAdminRequest true "Admin data"
// @Success 201 {object} models.ApiResponse{data=models.AdminResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 403 {object} models.ApiResponse "Super admin access required"
// @Failure 409 {object} models.ApiResponse "Email already registered"
// @Router /api/v1/admin/admins [post]
func CreateAdmin(c *gin.Context) {
	var req models.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	admin, err := services.GetAdminAuthService().CreateAdmin(ctx, req.Email, req.Name, req.Password, req.Role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"component":  "auth",
		"admin_id":   admin.ID,
		"created_by": c.GetString("adminEmail"),
		"admin_role": admin.Role,
	}).Info("admin created")

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Admin created successfully", admin.ToResponse()))
}

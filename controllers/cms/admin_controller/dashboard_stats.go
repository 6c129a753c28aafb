package admin_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelsantos7520/draymodas/config"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/rafaelsantos7520/draymodas/services"
	"github.com/rafaelsantos7520/draymodas/utils"
)

// GetDashboardStats godoc
// @Summary Get dashboard statistics
// @Description Product, category and size counts for the CMS home page
// @Tags Admin - Stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.DashboardStats}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Router /api/v1/admin/stats [get]
func GetDashboardStats(c *gin.Context) {
	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	stats, err := services.GetProductService().DashboardStats(ctx)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Dashboard stats retrieved", stats))
}

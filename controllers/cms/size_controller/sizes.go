package size_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelsantos7520/draymodas/config"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/rafaelsantos7520/draymodas/services"
	"github.com/rafaelsantos7520/draymodas/utils"
)

// GetSizes godoc
// @Summary List sizes
// @Tags CMS - Sizes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=[]models.Size}
// @Router /api/v1/admin/sizes [get]
func GetSizes(c *gin.Context) {
	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	sizes, err := services.GetSizeService().List(ctx)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Sizes fetched successfully", sizes))
}

// CreateSize godoc
// @Summary Create a size
// @Tags CMS - Sizes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param size body models.SizeRequest true "Size data"
// @Success 201 {object} models.ApiResponse{data=models.Size}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /api/v1/admin/sizes [post]
func CreateSize(c *gin.Context) {
	var req models.SizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	size, err := services.GetSizeService().Create(ctx, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Size created successfully", size))
}

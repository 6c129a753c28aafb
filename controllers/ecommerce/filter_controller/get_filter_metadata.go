package filter_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelsantos7520/draymodas/config"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/rafaelsantos7520/draymodas/services"
	"github.com/rafaelsantos7520/draymodas/utils"
)

// GetFilterMetadata godoc
// @Summary Get catalog filter options
// @Description Categories with active product counts, all sizes and the active price range
// @Tags Storefront - Filters
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.FilterMetadata}
// @Failure 503 {object} models.ApiResponse
// @Router /api/v1/store/filters [get]
func GetFilterMetadata(c *gin.Context) {
	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	meta, err := services.GetCatalogService().FilterMetadata(ctx)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter metadata fetched successfully", meta))
}

// GetSizes godoc
// @Summary List sizes
// @Tags Storefront - Filters
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.Size}
// @Router /api/v1/store/sizes [get]
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

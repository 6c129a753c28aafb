package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelsantos7520/draymodas/config"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/rafaelsantos7520/draymodas/services"
	"github.com/rafaelsantos7520/draymodas/utils"
)

// GetCategories godoc
// @Summary Get storefront categories
// @Description All categories with their active product counts
// @Tags Storefront - Categories
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.CategoryWithCount}
// @Failure 503 {object} models.ApiResponse
// @Router /api/v1/store/categories [get]
func GetCategories(c *gin.Context) {
	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	// shares the cached filter metadata, whose counts only include active products
	meta, err := services.GetCatalogService().FilterMetadata(ctx)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched successfully", meta.Categories))
}

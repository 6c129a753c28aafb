package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelsantos7520/draymodas/config"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/rafaelsantos7520/draymodas/services"
	"github.com/rafaelsantos7520/draymodas/utils"
)

// GetProducts godoc
// @Summary Get paginated products
// @Description All products, active or not, with the storefront filters and sort orders
// @Tags CMS - Products
// @Produce json
// @Security BearerAuth
// @Param categoryId query string false "Category ID"
// @Param minPrice query number false "Minimum price (inclusive)"
// @Param maxPrice query number false "Maximum price (inclusive)"
// @Param sizeId query []string false "Size IDs" collectionFormat(multi)
// @Param search query string false "Case-insensitive match on the product name"
// @Param sort query string false "Sort order" Enums(relevancia, menor-preco, maior-preco)
// @Param page query int false "Page number" default(1)
// @Param perPage query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Product,meta=models.Pagination}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/admin/products [get]
func GetProducts(c *gin.Context) {
	filter, err := services.ParseCatalogQuery(c.Request.URL.Query())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	page, err := services.GetCatalogService().Search(ctx, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched successfully", page.Data, &page.Meta))
}

package product_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rafaelsantos7520/draymodas/config"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/rafaelsantos7520/draymodas/services"
	"github.com/rafaelsantos7520/draymodas/utils"
)

// GetStorefrontProducts godoc
// @Summary List storefront products
// @Description Active products filtered by category, price range, sizes and name, sorted and paginated
// @Tags Storefront - Products
// @Produce json
// @Param categoryId query string false "Category ID"
// @Param minPrice query number false "Minimum price (inclusive)"
// @Param maxPrice query number false "Maximum price (inclusive)"
// @Param sizeId query []string false "Size IDs, repeated or comma separated" collectionFormat(multi)
// @Param search query string false "Case-insensitive match on the product name"
// @Param sort query string false "Sort order" Enums(relevancia, menor-preco, maior-preco)
// @Param page query int false "Page number" default(1)
// @Param perPage query int false "Items per page" default(20)
// @Param limit query int false "Alias of perPage"
// @Success 200 {object} models.ApiResponse{data=[]models.Product,meta=models.Pagination}
// @Failure 400 {object} models.ApiResponse "Invalid filter"
// @Failure 404 {object} models.ApiResponse "Unknown category"
// @Failure 503 {object} models.ApiResponse
// @Router /api/v1/store/products [get]
func GetStorefrontProducts(c *gin.Context) {
	filter, err := services.ParseCatalogQuery(c.Request.URL.Query())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	filter.OnlyActive = true

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	page, err := services.GetCatalogService().Search(ctx, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched successfully", page.Data, &page.Meta))
}

// GetFeaturedProducts godoc
// @Summary List featured products
// @Description Active featured products, newest first
// @Tags Storefront - Products
// @Produce json
// @Param limit query int false "Maximum number of products" default(12)
// @Success 200 {object} models.ApiResponse{data=[]models.Product}
// @Failure 400 {object} models.ApiResponse
// @Router /api/v1/store/products/featured [get]
func GetFeaturedProducts(c *gin.Context) {
	limit := services.FeaturedLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > models.MaxPerPage {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "limit must be an integer between 1 and 100"))
			return
		}
		limit = n
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	products, err := services.GetCatalogService().Featured(ctx, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Featured products fetched successfully", products))
}

package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rafaelsantos7520/draymodas/config"
	"github.com/rafaelsantos7520/draymodas/middleware"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/rafaelsantos7520/draymodas/services"
	"github.com/rafaelsantos7520/draymodas/utils"
)

// CreateProduct godoc
// @Summary Create a product
// @Description Create a product with its sizes and optional image URLs. Products are active unless isActive is false.
// @Tags CMS - Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body models.ProductRequest true "Product data"
// @Success 201 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse "Unknown category or size"
// @Router /api/v1/admin/products [post]
func CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	var adminID *uuid.UUID
	if id, ok := middleware.AdminIDFromContext(c); ok {
		adminID = &id
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	product, err := services.GetProductService().Create(ctx, adminID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Product created successfully", product))
}

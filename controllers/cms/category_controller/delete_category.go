package category_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rafaelsantos7520/draymodas/config"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/rafaelsantos7520/draymodas/services"
	"github.com/rafaelsantos7520/draymodas/utils"
)

// DeleteCategory godoc
// @Summary Delete a category
// @Description Delete a category by ID. Refused with 409 while products reference it.
// @Tags CMS - Categories
// @Param id path string true "Category ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /api/v1/admin/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid category ID"))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	if err := services.GetCategoryService().Delete(ctx, categoryID); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Category deleted successfully", nil))
}

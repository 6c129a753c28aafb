package cms_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rafaelsantos7520/draymodas/controllers/cms/category_controller"
)

func SetupCategoryRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	category := rg.Group("/categories")
	category.Use(auth)
	{
		category.GET("", category_controller.GetCategories)
		category.GET("/:id", category_controller.GetCategoryByID)

		category.POST("", category_controller.CreateCategory)
		category.PUT("/:id", category_controller.UpdateCategory)
		category.PATCH("/:id", category_controller.UpdateCategory)

		// Refused with 409 while products still reference the category
		category.DELETE("/:id", category_controller.DeleteCategory)
	}
}

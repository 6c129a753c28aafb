package cms_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rafaelsantos7520/draymodas/controllers/cms/product_controller"
	"github.com/rafaelsantos7520/draymodas/controllers/cms/size_controller"
)

func SetupProductRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	product := rg.Group("/products")
	product.Use(auth)
	{
		// Read
		product.GET("", product_controller.GetProducts)
		product.GET("/:id", product_controller.GetProductByID)

		// Create
		product.POST("", product_controller.CreateProduct)

		// Update
		product.PATCH("/:id", product_controller.UpdateProduct)

		// Delete
		product.DELETE("/:id", product_controller.DeleteProduct)

		// Images
		product.POST("/:id/images", product_controller.AddProductImage)
		product.DELETE("/:id/images/:imageId", product_controller.DeleteProductImage)
	}
}

func SetupSizeRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	size := rg.Group("/sizes")
	size.Use(auth)
	{
		size.GET("", size_controller.GetSizes)
		size.POST("", size_controller.CreateSize)
	}
}

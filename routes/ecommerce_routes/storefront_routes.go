package ecommerce_routes

import (
	"github.com/gin-gonic/gin"
	store_category "github.com/rafaelsantos7520/draymodas/controllers/ecommerce/category_controller"
	store_filter "github.com/rafaelsantos7520/draymodas/controllers/ecommerce/filter_controller"
	store_product "github.com/rafaelsantos7520/draymodas/controllers/ecommerce/product_controller"
)

func SetupStorefrontRoutes(router *gin.RouterGroup) {
	// Storefront routes (public, no auth required)
	store := router.Group("/store")

	// Product routes
	products := store.Group("/products")
	{
		products.GET("", store_product.GetStorefrontProducts)        // List with filters
		products.GET("/featured", store_product.GetFeaturedProducts) // Home page highlights
		products.GET("/:id", store_product.GetStorefrontProductByID) // Single product with related
	}

	// Category routes
	categories := store.Group("/categories")
	{
		categories.GET("", store_category.GetCategories)       // List all
		categories.GET("/:id", store_category.GetCategoryByID) // Single category
	}

	store.GET("/filters", store_filter.GetFilterMetadata)
	store.GET("/sizes", store_filter.GetSizes)
}

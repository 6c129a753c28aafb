package services

import (
	"github.com/rafaelsantos7520/draymodas/cache"
	"gorm.io/gorm"
)

var (
	catalogService   *CatalogService
	categoryService  *CategoryService
	productService   *ProductService
	sizeService      *SizeService
	adminAuthService *AdminAuthService
)

// InitServices wires the package-level services used by the controllers.
// InitJWTService must run first.
func InitServices(db *gorm.DB, store cache.Store, defaultPerPage int) {
	catalogService = NewCatalogService(db, store, defaultPerPage)
	categoryService = NewCategoryService(db, catalogService)
	productService = NewProductService(db, catalogService)
	sizeService = NewSizeService(db, catalogService)
	adminAuthService = NewAdminAuthService(db, jwtService)
}

func GetCatalogService() *CatalogService { return catalogService }

func GetCategoryService() *CategoryService { return categoryService }

func GetProductService() *ProductService { return productService }

func GetSizeService() *SizeService { return sizeService }

func GetAdminAuthService() *AdminAuthService { return adminAuthService }

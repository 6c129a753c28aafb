package models

import "github.com/shopspring/decimal"

// ProductDetail is the storefront product page: the product plus others from its category.
type ProductDetail struct {
	Product Product   `json:"product"`
	Related []Product `json:"related"`
}

// FilterMetadata represents all filter data for the storefront
type FilterMetadata struct {
	Categories []CategoryWithCount `json:"categories"`
	Sizes      []Size              `json:"sizes"`
	PriceRange PriceRange          `json:"priceRange"`
}

// PriceRange represents the minimum and maximum active price in the store
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

type DashboardStats struct {
	TotalProducts    int64 `json:"totalProducts"`
	ActiveProducts   int64 `json:"activeProducts"`
	FeaturedProducts int64 `json:"featuredProducts"`
	TotalCategories  int64 `json:"totalCategories"`
	TotalSizes       int64 `json:"totalSizes"`
}

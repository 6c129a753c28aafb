package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// SortOrder is the storefront sort key. The Portuguese labels are canonical.
type SortOrder string

const (
	SortRelevance SortOrder = "relevancia"
	SortPriceAsc  SortOrder = "menor-preco"
	SortPriceDesc SortOrder = "maior-preco"
)

var sortAliases = map[string]SortOrder{
	"":                    SortRelevance,
	string(SortRelevance): SortRelevance,
	"relevance":           SortRelevance,
	string(SortPriceAsc):  SortPriceAsc,
	"price-asc":           SortPriceAsc,
	string(SortPriceDesc): SortPriceDesc,
	"price-desc":          SortPriceDesc,
}

// ParseSortOrder resolves a label or alias. Empty means relevance.
func ParseSortOrder(s string) (SortOrder, bool) {
	order, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]
	return order, ok
}

// OrderClauses returns the ORDER BY terms. The id tiebreaker follows the
// primary direction so price-desc is the exact reverse of price-asc.
func (s SortOrder) OrderClauses() []string {
	switch s {
	case SortPriceAsc:
		return []string{"products.price ASC", "products.id ASC"}
	case SortPriceDesc:
		return []string{"products.price DESC", "products.id DESC"}
	default:
		return []string{"products.created_at DESC", "products.id DESC"}
	}
}

// ProductFilter is one catalog query. Nil or empty fields do not constrain.
type ProductFilter struct {
	CategoryID *uuid.UUID       `json:"categoryId,omitempty"`
	MinPrice   *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice   *decimal.Decimal `json:"maxPrice,omitempty"`
	Search     string           `json:"search,omitempty"`
	SizeIDs    []uuid.UUID      `json:"sizeIds,omitempty"`
	Sort       SortOrder        `json:"sort"`
	Page       int              `json:"page"`
	PerPage    int              `json:"perPage"`
	OnlyActive bool             `json:"onlyActive"`
}

func (f ProductFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}

// CacheKey is stable for equal normalized filters.
func (f ProductFilter) CacheKey() string {
	b, _ := json.Marshal(f)
	return "products:" + string(b)
}

// ProductPage is one page of the catalog with its metadata.
type ProductPage struct {
	Data []Product  `json:"data"`
	Meta Pagination `json:"meta"`
}

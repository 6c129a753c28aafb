package services

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/shopspring/decimal"
)

// ParseCatalogQuery turns listing query parameters into a ProductFilter.
// Empty parameters are treated as absent. Malformed values are rejected,
// never ignored. "limit" is accepted as an older name for "perPage".
func ParseCatalogQuery(q url.Values) (models.ProductFilter, error) {
	var f models.ProductFilter

	if v := strings.TrimSpace(q.Get("categoryId")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return f, invalid("categoryId", "must be a valid UUID")
		}
		f.CategoryID = &id
	}

	var err error
	if f.MinPrice, err = parsePrice(q, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePrice(q, "maxPrice"); err != nil {
		return f, err
	}

	f.Search = strings.TrimSpace(q.Get("search"))

	for _, raw := range q["sizeId"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return f, invalid("sizeId", "must be a valid UUID")
			}
			f.SizeIDs = append(f.SizeIDs, id)
		}
	}

	sortOrder, ok := models.ParseSortOrder(q.Get("sort"))
	if !ok {
		return f, invalid("sort", "must be one of relevancia, menor-preco, maior-preco")
	}
	f.Sort = sortOrder

	if f.Page, err = parsePositiveInt(q.Get("page"), "page"); err != nil {
		return f, err
	}

	perPage := q.Get("perPage")
	field := "perPage"
	if strings.TrimSpace(perPage) == "" {
		perPage, field = q.Get("limit"), "limit"
	}
	if f.PerPage, err = parsePositiveInt(perPage, field); err != nil {
		return f, err
	}

	return f, nil
}

func parsePrice(q url.Values, field string) (*decimal.Decimal, error) {
	v := strings.TrimSpace(q.Get(field))
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, invalid(field, "must be a number")
	}
	if d.IsNegative() {
		return nil, invalid(field, "must not be negative")
	}
	return &d, nil
}

// parsePositiveInt returns 0 for an empty value so Normalize applies the default.
func parsePositiveInt(v, field string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, invalid(field, "must be a positive integer")
	}
	return n, nil
}

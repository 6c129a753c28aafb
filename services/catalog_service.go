package services

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rafaelsantos7520/draymodas/cache"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	FeaturedLimit = 12
	RelatedLimit  = 5
)

// CatalogService answers product listings for the storefront and the CMS.
// It is read-only; admin writes call Invalidate.
type CatalogService struct {
	db             *gorm.DB
	store          cache.Store
	defaultPerPage int
	group          singleflight.Group
	log            *logrus.Entry
}

func NewCatalogService(db *gorm.DB, store cache.Store, defaultPerPage int) *CatalogService {
	if store == nil {
		store = cache.Noop{}
	}
	if defaultPerPage <= 0 || defaultPerPage > models.MaxPerPage {
		defaultPerPage = models.DefaultPerPage
	}
	return &CatalogService{
		db:             db,
		store:          store,
		defaultPerPage: defaultPerPage,
		log:            logrus.WithField("component", "catalog"),
	}
}

// Normalize applies paging defaults and canonicalizes the filter so equal
// queries share a cache key.
func (s *CatalogService) Normalize(f models.ProductFilter) (models.ProductFilter, error) {
	switch {
	case f.Page < 0:
		return f, invalid("page", "must be a positive integer")
	case f.Page == 0:
		f.Page = 1
	}

	switch {
	case f.PerPage < 0:
		return f, invalid("perPage", "must be a positive integer")
	case f.PerPage == 0:
		f.PerPage = s.defaultPerPage
	case f.PerPage > models.MaxPerPage:
		f.PerPage = models.MaxPerPage
	}
	if f.Page > math.MaxInt/f.PerPage {
		return f, invalid("page", "is too large")
	}

	order, ok := models.ParseSortOrder(string(f.Sort))
	if !ok {
		return f, invalid("sort", "must be one of relevancia, menor-preco, maior-preco")
	}
	f.Sort = order

	if f.MinPrice != nil && f.MinPrice.IsNegative() {
		return f, invalid("minPrice", "must not be negative")
	}
	if f.MaxPrice != nil && f.MaxPrice.IsNegative() {
		return f, invalid("maxPrice", "must not be negative")
	}

	f.Search = strings.TrimSpace(f.Search)
	f.SizeIDs = uniqueSortedIDs(f.SizeIDs)
	return f, nil
}

// Search returns one page of products matching every present filter field.
func (s *CatalogService) Search(ctx context.Context, f models.ProductFilter) (models.ProductPage, error) {
	f, err := s.Normalize(f)
	if err != nil {
		return models.ProductPage{}, err
	}
	return cachedLoad(ctx, s, f.CacheKey(), func(ctx context.Context) (models.ProductPage, error) {
		return s.search(ctx, f)
	})
}

func (s *CatalogService) search(ctx context.Context, f models.ProductFilter) (models.ProductPage, error) {
	if f.CategoryID != nil {
		var n int64
		if err := s.db.WithContext(ctx).Model(&models.Category{}).
			Where("id = ?", *f.CategoryID).Count(&n).Error; err != nil {
			return models.ProductPage{}, storeError("check category", err)
		}
		if n == 0 {
			return models.ProductPage{}, notFound("category", f.CategoryID)
		}
	}

	var (
		total    int64
		products = make([]models.Product, 0, f.PerPage)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.filtered(gctx, f).Count(&total).Error; err != nil {
			return storeError("count products", err)
		}
		return nil
	})
	g.Go(func() error {
		q := withRelations(s.filtered(gctx, f))
		for _, order := range f.Sort.OrderClauses() {
			q = q.Order(order)
		}
		if err := q.Limit(f.PerPage).Offset(f.Offset()).Find(&products).Error; err != nil {
			return storeError("list products", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.ProductPage{}, err
	}

	s.log.WithFields(logrus.Fields{
		"total":   total,
		"page":    f.Page,
		"perPage": f.PerPage,
		"sort":    f.Sort,
	}).Debug("catalog query served from store")

	return models.ProductPage{
		Data: products,
		Meta: models.NewPagination(total, f.Page, f.PerPage),
	}, nil
}

// filtered builds the WHERE conjunction. Each call returns a fresh statement.
func (s *CatalogService) filtered(ctx context.Context, f models.ProductFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Product{})

	if f.OnlyActive {
		q = q.Where("products.is_active = ?", true)
	}
	if f.CategoryID != nil {
		q = q.Where("products.category_id = ?", *f.CategoryID)
	}
	if f.MinPrice != nil {
		q = q.Where("products.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("products.price <= ?", *f.MaxPrice)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		// SQLite's LOWER only folds ASCII letters.
		if s.db.Dialector.Name() == "postgres" {
			q = q.Where(`products.name ILIKE ? ESCAPE '\'`, pattern)
		} else {
			q = q.Where(`LOWER(products.name) LIKE ? ESCAPE '\'`, pattern)
		}
	}
	if len(f.SizeIDs) > 0 {
		q = q.Where("EXISTS (SELECT 1 FROM product_sizes ps WHERE ps.product_id = products.id AND ps.size_id IN ?)", idStrings(f.SizeIDs))
	}
	return q
}

// withRelations preloads category, images and sizes with one query per relation.
func withRelations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("images.created_at ASC").Order("images.id ASC")
		}).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("sizes.name ASC")
		})
}

// Featured returns up to limit active featured products, newest first.
func (s *CatalogService) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 || limit > models.MaxPerPage {
		limit = FeaturedLimit
	}
	key := "featured:" + strconv.Itoa(limit)
	return cachedLoad(ctx, s, key, func(ctx context.Context) ([]models.Product, error) {
		products := make([]models.Product, 0, limit)
		q := withRelations(s.db.WithContext(ctx).Model(&models.Product{})).
			Where("products.is_active = ? AND products.is_featured = ?", true, true)
		for _, order := range models.SortRelevance.OrderClauses() {
			q = q.Order(order)
		}
		if err := q.Limit(limit).Find(&products).Error; err != nil {
			return nil, storeError("list featured products", err)
		}
		return products, nil
	})
}

type priceBounds struct {
	MinPrice decimal.NullDecimal
	MaxPrice decimal.NullDecimal
}

// FilterMetadata lists the values the storefront can filter on.
func (s *CatalogService) FilterMetadata(ctx context.Context) (models.FilterMetadata, error) {
	return cachedLoad(ctx, s, "filters:metadata", func(ctx context.Context) (models.FilterMetadata, error) {
		meta := models.FilterMetadata{
			Categories: make([]models.CategoryWithCount, 0),
			Sizes:      make([]models.Size, 0),
		}
		db := s.db.WithContext(ctx)

		if err := db.Raw(`
			SELECT categories.id, categories.name, categories.created_at, categories.updated_at,
			       COUNT(products.id) AS products_count
			FROM categories
			LEFT JOIN products ON products.category_id = categories.id AND products.is_active = ?
			GROUP BY categories.id, categories.name, categories.created_at, categories.updated_at
			ORDER BY categories.name ASC`, true).
			Scan(&meta.Categories).Error; err != nil {
			return meta, storeError("list category counts", err)
		}

		if err := db.Order("name ASC").Find(&meta.Sizes).Error; err != nil {
			return meta, storeError("list sizes", err)
		}

		var bounds priceBounds
		if err := db.Model(&models.Product{}).
			Select("MIN(price) AS min_price, MAX(price) AS max_price").
			Where("is_active = ?", true).
			Scan(&bounds).Error; err != nil {
			return meta, storeError("price range", err)
		}
		meta.PriceRange = models.PriceRange{Min: bounds.MinPrice.Decimal, Max: bounds.MaxPrice.Decimal}
		return meta, nil
	})
}

// Invalidate drops every cached listing. Failures are logged; entries
// still expire after their TTL.
func (s *CatalogService) Invalidate(ctx context.Context) {
	if err := s.store.Purge(ctx); err != nil {
		s.log.WithError(err).Warn("failed to purge catalog cache")
	}
}

// loadTimeout bounds a shared load once it no longer follows any single
// caller's context.
const loadTimeout = 10 * time.Second

// cachedLoad serves key from the cache, or runs load once for all concurrent
// callers and stores the result. Cache failures fall back to the store.
// A caller whose context ends stops waiting without failing the others.
func cachedLoad[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T

	data, ok, err := s.store.Get(ctx, key)
	switch {
	case err != nil:
		s.log.WithError(err).WithField("key", key).Warn("catalog cache read failed")
	case ok:
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		s.log.WithField("key", key).Warn("discarding undecodable cache entry")
	}

	ch := s.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		value, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(value); err == nil {
			if err := s.store.Set(loadCtx, key, data); err != nil {
				s.log.WithError(err).WithField("key", key).Warn("catalog cache write failed")
			}
		}
		return value, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func uniqueSortedIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

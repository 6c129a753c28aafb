package services

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var maxPrice = decimal.New(1, 10) // numeric(12,2)

// ProductService handles product writes and single-product reads.
// Listings go through CatalogService.
type ProductService struct {
	db      *gorm.DB
	catalog Invalidator
	log     *logrus.Entry
}

func NewProductService(db *gorm.DB, catalog Invalidator) *ProductService {
	return &ProductService{
		db:      db,
		catalog: catalog,
		log:     logrus.WithField("component", "product"),
	}
}

// ════════════════════════════════════════════════════════════
// Reads
// ════════════════════════════════════════════════════════════

// Get loads a product with its relations regardless of its active flag.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.load(s.db.WithContext(ctx), id, false)
}

// GetStorefront loads an active product plus up to RelatedLimit active
// products from the same category, newest first.
func (s *ProductService) GetStorefront(ctx context.Context, id uuid.UUID) (*models.ProductDetail, error) {
	db := s.db.WithContext(ctx)

	product, err := s.load(db, id, true)
	if err != nil {
		return nil, err
	}

	related := make([]models.Product, 0, RelatedLimit)
	q := withRelations(db.Model(&models.Product{})).
		Where("products.category_id = ? AND products.id <> ? AND products.is_active = ?", product.CategoryID, product.ID, true)
	for _, order := range models.SortRelevance.OrderClauses() {
		q = q.Order(order)
	}
	if err := q.Limit(RelatedLimit).Find(&related).Error; err != nil {
		return nil, storeError("list related products", err)
	}

	return &models.ProductDetail{Product: *product, Related: related}, nil
}

func (s *ProductService) load(db *gorm.DB, id uuid.UUID, onlyActive bool) (*models.Product, error) {
	q := withRelations(db.Model(&models.Product{})).Where("products.id = ?", id)
	if onlyActive {
		q = q.Where("products.is_active = ?", true)
	}

	var product models.Product
	if err := q.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("product", id)
		}
		return nil, storeError("get product", err)
	}
	return &product, nil
}

// ════════════════════════════════════════════════════════════
// Writes
// ════════════════════════════════════════════════════════════

// Create stores the product, its size links and optional image URLs in one transaction.
func (s *ProductService) Create(ctx context.Context, adminID *uuid.UUID, req models.ProductRequest) (*models.Product, error) {
	name, description := strings.TrimSpace(req.Name), strings.TrimSpace(req.Description)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if description == "" {
		return nil, invalid("description", "is required")
	}
	if req.Price == nil {
		return nil, invalid("price", "is required")
	}
	if err := validatePrice(*req.Price); err != nil {
		return nil, err
	}
	if req.CategoryID == uuid.Nil {
		return nil, invalid("categoryId", "is required")
	}
	sizeIDs := uniqueSortedIDs(req.SizeIDs)
	if len(sizeIDs) == 0 {
		return nil, invalid("sizeIds", "at least one size is required")
	}
	for _, raw := range req.Images {
		if err := validateImageURL(raw); err != nil {
			return nil, err
		}
	}

	product := models.Product{
		Name:        name,
		Description: description,
		Price:       *req.Price,
		CategoryID:  req.CategoryID,
		AdminID:     adminID,
		IsActive:    boolOr(req.IsActive, true),
		IsReady:     boolOr(req.IsReady, false),
		IsFeatured:  boolOr(req.IsFeatured, false),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategoryExists(tx, req.CategoryID); err != nil {
			return err
		}
		if err := ensureSizesExist(tx, sizeIDs); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&product).Error; err != nil {
			return err
		}
		if err := linkSizes(tx, product.ID, sizeIDs); err != nil {
			return err
		}
		for _, raw := range req.Images {
			image := models.Image{URL: strings.TrimSpace(raw), ProductID: product.ID}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeError("create product", err)
	}

	s.log.WithFields(logrus.Fields{"product_id": product.ID, "category_id": product.CategoryID}).Info("product created")
	s.invalidate(ctx)
	return s.Get(ctx, product.ID)
}

// Update applies the fields present in req. Sizes are replaced when given.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req models.UpdateProductRequest) (*models.Product, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("product", id)
			}
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return invalid("name", "must not be empty")
			}
			product.Name = name
		}
		if req.Description != nil {
			description := strings.TrimSpace(*req.Description)
			if description == "" {
				return invalid("description", "must not be empty")
			}
			product.Description = description
		}
		if req.Price != nil {
			if err := validatePrice(*req.Price); err != nil {
				return err
			}
			product.Price = *req.Price
		}
		if req.CategoryID != nil {
			if err := ensureCategoryExists(tx, *req.CategoryID); err != nil {
				return err
			}
			product.CategoryID = *req.CategoryID
		}
		product.IsActive = boolOr(req.IsActive, product.IsActive)
		product.IsReady = boolOr(req.IsReady, product.IsReady)
		product.IsFeatured = boolOr(req.IsFeatured, product.IsFeatured)

		if err := tx.Omit(clause.Associations).Save(&product).Error; err != nil {
			return err
		}

		if req.SizeIDs != nil {
			sizeIDs := uniqueSortedIDs(*req.SizeIDs)
			if len(sizeIDs) == 0 {
				return invalid("sizeIds", "at least one size is required")
			}
			if err := ensureSizesExist(tx, sizeIDs); err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", id).Delete(&models.ProductSize{}).Error; err != nil {
				return err
			}
			if err := linkSizes(tx, id, sizeIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeError("update product", err)
	}

	s.log.WithField("product_id", id).Info("product updated")
	s.invalidate(ctx)
	return s.Get(ctx, id)
}

// Delete removes the product with its size links and images.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Select("id").First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("product", id)
			}
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductSize{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
	if err != nil {
		return storeError("delete product", err)
	}

	s.log.WithField("product_id", id).Info("product deleted")
	s.invalidate(ctx)
	return nil
}

// AddImage appends an image URL to the product gallery.
func (s *ProductService) AddImage(ctx context.Context, productID uuid.UUID, req models.ImageRequest) (*models.Image, error) {
	if err := validateImageURL(req.URL); err != nil {
		return nil, err
	}

	image := models.Image{URL: strings.TrimSpace(req.URL), ProductID: productID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return notFound("product", productID)
		}
		return tx.Create(&image).Error
	})
	if err != nil {
		return nil, storeError("add image", err)
	}

	s.invalidate(ctx)
	return &image, nil
}

// DeleteImage removes an image only if it belongs to productID.
func (s *ProductService) DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", imageID, productID).
		Delete(&models.Image{})
	if res.Error != nil {
		return storeError("delete image", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("image", imageID)
	}

	s.invalidate(ctx)
	return nil
}

// DashboardStats counts the catalog for the CMS home page.
func (s *ProductService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	count := func(dest *int64, model any, query string, args ...any) {
		g.Go(func() error {
			q := s.db.WithContext(gctx).Model(model)
			if query != "" {
				q = q.Where(query, args...)
			}
			return q.Count(dest).Error
		})
	}
	count(&stats.TotalProducts, &models.Product{}, "")
	count(&stats.ActiveProducts, &models.Product{}, "is_active = ?", true)
	count(&stats.FeaturedProducts, &models.Product{}, "is_featured = ?", true)
	count(&stats.TotalCategories, &models.Category{}, "")
	count(&stats.TotalSizes, &models.Size{}, "")

	if err := g.Wait(); err != nil {
		return nil, storeError("dashboard stats", err)
	}
	return &stats, nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.catalog != nil {
		s.catalog.Invalidate(ctx)
	}
}

// ════════════════════════════════════════════════════════════
// Helpers
// ════════════════════════════════════════════════════════════

func ensureCategoryExists(tx *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound("category", id)
	}
	return nil
}

// ensureSizesExist expects ids to be unique.
func ensureSizesExist(tx *gorm.DB, ids []uuid.UUID) error {
	var found []uuid.UUID
	if err := tx.Model(&models.Size{}).Where("id IN ?", idStrings(ids)).Pluck("id", &found).Error; err != nil {
		return err
	}
	if len(found) == len(ids) {
		return nil
	}
	present := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			return notFound("size", id)
		}
	}
	return nil
}

func linkSizes(tx *gorm.DB, productID uuid.UUID, sizeIDs []uuid.UUID) error {
	rows := make([]models.ProductSize, len(sizeIDs))
	for i, sizeID := range sizeIDs {
		rows[i] = models.ProductSize{ProductID: productID, SizeID: sizeID}
	}
	return tx.Create(&rows).Error
}

func validatePrice(p decimal.Decimal) error {
	switch {
	case p.IsNegative():
		return invalid("price", "must not be negative")
	case !p.Equal(p.Round(2)):
		return invalid("price", "must have at most 2 decimal places")
	case p.GreaterThanOrEqual(maxPrice):
		return invalid("price", "is too large")
	}
	return nil
}

func validateImageURL(raw string) error {
	u, err := url.ParseRequestURI(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("url", "must be an absolute http(s) URL")
	}
	return nil
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

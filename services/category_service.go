package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Invalidator is notified after every catalog write.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type CategoryService struct {
	db      *gorm.DB
	catalog Invalidator
	log     *logrus.Entry
}

func NewCategoryService(db *gorm.DB, catalog Invalidator) *CategoryService {
	return &CategoryService{
		db:      db,
		catalog: catalog,
		log:     logrus.WithField("component", "category"),
	}
}

// List returns every category ordered by name with the number of products in it.
func (s *CategoryService) List(ctx context.Context) ([]models.CategoryWithCount, error) {
	categories := make([]models.CategoryWithCount, 0)
	err := s.db.WithContext(ctx).Raw(`
		SELECT categories.id, categories.name, categories.created_at, categories.updated_at,
		       COUNT(products.id) AS products_count
		FROM categories
		LEFT JOIN products ON products.category_id = categories.id
		GROUP BY categories.id, categories.name, categories.created_at, categories.updated_at
		ORDER BY categories.name ASC`).
		Scan(&categories).Error
	if err != nil {
		return nil, storeError("list categories", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("category", id)
		}
		return nil, storeError("get category", err)
	}
	return &category, nil
}

func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	name, err := categoryName(req.Name)
	if err != nil {
		return nil, err
	}

	category := models.Category{Name: name}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueName(tx, &models.Category{}, "category", name, uuid.Nil); err != nil {
			return err
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return nil, &ConflictError{Resource: "category", Reason: "a category with this name already exists"}
		}
		return nil, storeError("create category", err)
	}

	s.log.WithField("category_id", category.ID).Info("category created")
	s.invalidate(ctx)
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req models.CategoryRequest) (*models.Category, error) {
	name, err := categoryName(req.Name)
	if err != nil {
		return nil, err
	}

	var category models.Category
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("category", id)
			}
			return err
		}
		if err := ensureUniqueName(tx, &models.Category{}, "category", name, id); err != nil {
			return err
		}
		category.Name = name
		return tx.Save(&category).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return nil, &ConflictError{Resource: "category", Reason: "a category with this name already exists"}
		}
		return nil, storeError("update category", err)
	}

	s.log.WithField("category_id", id).Info("category updated")
	s.invalidate(ctx)
	return &category, nil
}

// Delete removes a category only when no product references it. The check and
// the delete share one transaction; the products foreign key rejects a product
// inserted concurrently.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("category", id)
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{
				Resource: "category",
				Reason:   "category has dependent products",
				Count:    count,
			}
		}

		return tx.Delete(&category).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return &ConflictError{Resource: "category", Reason: "category has dependent products"}
		}
		return storeError("delete category", err)
	}

	s.log.WithField("category_id", id).Info("category deleted")
	s.invalidate(ctx)
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if s.catalog != nil {
		s.catalog.Invalidate(ctx)
	}
}

func categoryName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", invalid("name", "is required")
	}
	if len(name) > 100 {
		return "", invalid("name", "must be at most 100 characters")
	}
	return name, nil
}

// ensureUniqueName rejects a case-insensitive duplicate name, ignoring the row being renamed.
func ensureUniqueName(tx *gorm.DB, model any, resource, name string, self uuid.UUID) error {
	var count int64
	q := tx.Model(model).Where("LOWER(name) = ?", strings.ToLower(name))
	if self != uuid.Nil {
		q = q.Where("id <> ?", self)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &ConflictError{Resource: resource, Reason: "a " + resource + " with this name already exists"}
	}
	return nil
}

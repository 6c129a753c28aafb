package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rafaelsantos7520/draymodas/config"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var baseTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

// setupTestDB creates an in-memory SQLite database with the production schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db), "failed to migrate test database")
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func createCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createSize(t *testing.T, db *gorm.DB, name string) models.Size {
	t.Helper()
	size := models.Size{Name: name}
	require.NoError(t, db.Create(&size).Error)
	return size
}

type productSeed struct {
	Name     string
	Price    string
	Category models.Category
	Sizes    []models.Size
	Inactive bool
	Featured bool
	Minute   int // created at baseTime + Minute
}

func createProduct(t *testing.T, db *gorm.DB, seed productSeed) models.Product {
	t.Helper()
	product := models.Product{
		Name:        seed.Name,
		Description: "descricao de " + seed.Name,
		Price:       dec(seed.Price),
		CategoryID:  seed.Category.ID,
		IsActive:    !seed.Inactive,
		IsFeatured:  seed.Featured,
		CreatedAt:   baseTime.Add(time.Duration(seed.Minute) * time.Minute),
	}
	require.NoError(t, db.Omit(clause.Associations).Create(&product).Error)
	for _, size := range seed.Sizes {
		require.NoError(t, db.Create(&models.ProductSize{ProductID: product.ID, SizeID: size.ID}).Error)
	}
	return product
}

func productIDs(products []models.Product) []uuid.UUID {
	ids := make([]uuid.UUID, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func productNames(products []models.Product) []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}

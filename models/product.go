package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ═══════════════════════════════════════════════════════════
// Main Product Model (GORM)
// ═══════════════════════════════════════════════════════════

// Product is stored with exactly one category. Reads expand Category, Images and Sizes.
type Product struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string          `json:"name" gorm:"not null;index"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null;check:price >= 0"`
	CategoryID  uuid.UUID       `json:"categoryId" gorm:"type:uuid;not null;index"`
	AdminID     *uuid.UUID      `json:"adminId,omitempty" gorm:"type:uuid;index"`
	IsActive    bool            `json:"isActive" gorm:"not null;index"`
	IsFeatured  bool            `json:"isFeatured" gorm:"not null"`
	IsReady     bool            `json:"isReady" gorm:"not null"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:RESTRICT"`
	Images   []Image   `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Sizes    []Size    `json:"sizes" gorm:"many2many:product_sizes"`
}

// BeforeCreate hook - auto-generate UUID v7
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

// ProductSize is the product/size join row; it carries only the two keys.
type ProductSize struct {
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;primaryKey"`
	SizeID    uuid.UUID `json:"sizeId" gorm:"type:uuid;primaryKey;index"`
}

func (ProductSize) TableName() string {
	return "product_sizes"
}

// Image belongs to one product; galleries are shown oldest first.
type Image struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Image) TableName() string {
	return "images"
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type ProductRequest struct {
	Name        string           `json:"name" binding:"required" example:"Vestido Floral"`
	Description string           `json:"description" binding:"required" example:"Vestido floral com detalhes em renda"`
	Price       *decimal.Decimal `json:"price" binding:"required" example:"199.90"`
	CategoryID  uuid.UUID        `json:"categoryId" binding:"required"`
	SizeIDs     []uuid.UUID      `json:"sizeIds" binding:"required,min=1"`
	Images      []string         `json:"images"`
	IsActive    *bool            `json:"isActive"`
	IsReady     *bool            `json:"isReady"`
	IsFeatured  *bool            `json:"isFeatured"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *uuid.UUID       `json:"categoryId"`
	SizeIDs     *[]uuid.UUID     `json:"sizeIds"`
	IsActive    *bool            `json:"isActive"`
	IsReady     *bool            `json:"isReady"`
	IsFeatured  *bool            `json:"isFeatured"`
}

type ImageRequest struct {
	URL string `json:"url" binding:"required" example:"https://cdn.example.com/p/1.jpg"`
}

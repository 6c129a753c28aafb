package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Size is a clothing size such as PP, P, M, G, GG.
type Size struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (s *Size) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Size) TableName() string {
	return "sizes"
}

type SizeRequest struct {
	Name        string `json:"name" binding:"required" example:"M"`
	Description string `json:"description" example:"Médio"`
}

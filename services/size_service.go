package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SizeService struct {
	db      *gorm.DB
	catalog Invalidator
	log     *logrus.Entry
}

func NewSizeService(db *gorm.DB, catalog Invalidator) *SizeService {
	return &SizeService{
		db:      db,
		catalog: catalog,
		log:     logrus.WithField("component", "size"),
	}
}

func (s *SizeService) List(ctx context.Context) ([]models.Size, error) {
	sizes := make([]models.Size, 0)
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&sizes).Error; err != nil {
		return nil, storeError("list sizes", err)
	}
	return sizes, nil
}

func (s *SizeService) Create(ctx context.Context, req models.SizeRequest) (*models.Size, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if len(name) > 20 {
		return nil, invalid("name", "must be at most 20 characters")
	}

	size := models.Size{Name: name, Description: strings.TrimSpace(req.Description)}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueName(tx, &models.Size{}, "size", name, uuid.Nil); err != nil {
			return err
		}
		return tx.Create(&size).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return nil, &ConflictError{Resource: "size", Reason: "a size with this name already exists"}
		}
		return nil, storeError("create size", err)
	}

	s.log.WithField("size_id", size.ID).Info("size created")
	if s.catalog != nil {
		s.catalog.Invalidate(ctx)
	}
	return &size, nil
}

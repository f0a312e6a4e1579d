package repository

import (
	"context"
	"encoding/json"

	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/phonehub-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a catalog repository over the local
// inventory tables
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

// FetchCatalog renders phone variants and accessories in the inventory API's
// item shape, so the same adapter normalizes both backends.
func (r *catalogRepository) FetchCatalog(ctx context.Context) ([]byte, error) {
	var phones []entity.PhoneVariant
	if err := r.db.WithContext(ctx).
		Preload("Model").
		Order("id ASC").
		Find(&phones).Error; err != nil {
		return nil, err
	}

	var accessories []entity.Accessory
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&accessories).Error; err != nil {
		return nil, err
	}

	items := make([]any, 0, len(phones)+len(accessories))
	for _, p := range phones {
		items = append(items, p)
	}
	for _, a := range accessories {
		items = append(items, a)
	}
	return json.Marshal(items)
}

package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gracebuffer/storefront/internal/repo"
	"github.com/gracebuffer/storefront/pkg/db/models"
)

// ShadowRepository persists the local copy of per-product stock.
type ShadowRepository struct {
	repo.Base
}

// NewShadowRepository binds the repository to the provided DB handle.
func NewShadowRepository(db *gorm.DB) *ShadowRepository {
	return &ShadowRepository{Base: repo.NewBase(db)}
}

// Get returns the shadow stock for a product, or nil when none is cached.
func (r *ShadowRepository) Get(ctx context.Context, productID uuid.UUID) (*int, error) {
	var row models.ShadowStock
	err := r.DB(ctx).First(&row, "product_uuid = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	stock := row.Stock
	return &stock, nil
}

// Set upserts the shadow stock for a product.
func (r *ShadowRepository) Set(ctx context.Context, productID uuid.UUID, stock int) error {
	row := models.ShadowStock{ProductUUID: productID, Stock: stock}
	return r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_uuid"}},
		DoUpdates: clause.AssignmentColumns([]string{"stock", "updated_at"}),
	}).Create(&row).Error
}

// Delete drops the cached stock for a product.
func (r *ShadowRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	return r.DB(ctx).Delete(&models.ShadowStock{}, "product_uuid = ?", productID).Error
}

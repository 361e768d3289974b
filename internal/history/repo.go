package history

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracebuffer/storefront/internal/repo"
	"github.com/gracebuffer/storefront/pkg/db/models"
	"github.com/gracebuffer/storefront/pkg/pagination"
)

// Repository persists the shopper's local order history.
type Repository struct {
	repo.Base
}

// NewRepository binds the repository to the provided DB handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Record appends one order history entry, assigning its ID.
func (r *Repository) Record(ctx context.Context, record *models.OrderRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.DB(ctx).Create(record).Error
}

// ListForUser returns one page of the shopper's orders, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.OrderRecord, error) {
	page = page.Normalize()

	var records []models.OrderRecord
	err := r.DB(ctx).
		Where("user_uuid = ?", userID).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CountForUser returns the shopper's total number of recorded orders.
func (r *Repository) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.OrderRecord{}).
		Where("user_uuid = ?", userID).
		Count(&count).Error
	return count, err
}

package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gracebuffer/storefront/internal/repo"
	"github.com/gracebuffer/storefront/pkg/db/models"
)

// UserRepository caches remote-authenticated shoppers locally.
type UserRepository struct {
	repo.Base
}

// NewUserRepository binds the repository to the provided DB handle.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Base: repo.NewBase(db)}
}

// Save upserts the cached user record.
func (r *UserRepository) Save(ctx context.Context, record *models.UserRecord) error {
	return r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_uuid"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "access_token", "updated_at"}),
	}).Create(record).Error
}

// Get returns the cached record, or nil when the shopper never logged in.
func (r *UserRepository) Get(ctx context.Context, userID uuid.UUID) (*models.UserRecord, error) {
	var record models.UserRecord
	err := r.DB(ctx).First(&record, "user_uuid = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Delete drops the cached record, logging the shopper out locally.
func (r *UserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.DB(ctx).Delete(&models.UserRecord{}, "user_uuid = ?", userID).Error
}

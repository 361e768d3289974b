package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracebuffer/storefront/internal/repo"
	"github.com/gracebuffer/storefront/pkg/db/models"
	"github.com/gracebuffer/storefront/pkg/enums"
)

// LineRepository manages persistent cart lines for a shopper.
type LineRepository struct {
	repo.Base
}

// NewLineRepository binds the repository to the provided DB handle.
func NewLineRepository(db *gorm.DB) *LineRepository {
	return &LineRepository{Base: repo.NewBase(db)}
}

// ListForUser returns the shopper's cart lines in display order.
func (r *LineRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.DB(ctx).
		Where("user_uuid = ?", userID).
		Order("position asc").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// FindByIdentity looks up the line matching (shopper, product, sugar level).
// Returns nil without error when no line matches.
func (r *LineRepository) FindByIdentity(ctx context.Context, userID, productID uuid.UUID, sugar *enums.SugarLevel) (*models.CartLine, error) {
	query := r.DB(ctx).Where("user_uuid = ? AND product_uuid = ?", userID, productID)
	if sugar == nil {
		query = query.Where("sugar_level IS NULL")
	} else {
		query = query.Where("sugar_level = ?", *sugar)
	}

	var line models.CartLine
	if err := query.First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

// Save inserts or updates a line, assigning an ID on first write.
func (r *LineRepository) Save(ctx context.Context, line *models.CartLine) error {
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	return r.DB(ctx).Save(line).Error
}

// DeleteByIdentity removes the line matching (shopper, product, sugar level).
// Returns gorm.ErrRecordNotFound when nothing matched.
func (r *LineRepository) DeleteByIdentity(ctx context.Context, userID, productID uuid.UUID, sugar *enums.SugarLevel) error {
	query := r.DB(ctx).Where("user_uuid = ? AND product_uuid = ?", userID, productID)
	if sugar == nil {
		query = query.Where("sugar_level IS NULL")
	} else {
		query = query.Where("sugar_level = ?", *sugar)
	}

	result := query.Delete(&models.CartLine{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteForUser clears the shopper's whole cart.
func (r *LineRepository) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	return r.DB(ctx).Where("user_uuid = ?", userID).Delete(&models.CartLine{}).Error
}

// ReplaceForUser deletes existing lines and inserts the provided ones
// transactionally, renumbering positions to match slice order.
func (r *LineRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, lines []models.CartLine) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("user_uuid = ?", userID).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		for i := range lines {
			lines[i].UserUUID = userID
			lines[i].Position = i
			if lines[i].ID == uuid.Nil {
				lines[i].ID = uuid.New()
			}
		}
		return tx.Create(&lines).Error
	})
}

// CountForUser returns the number of cart lines (not quantities), which is
// what the cart badge displays.
func (r *LineRepository) CountForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.CartLine{}).
		Where("user_uuid = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// NextPosition returns the position for a newly appended line.
func (r *LineRepository) NextPosition(ctx context.Context, userID uuid.UUID) (int, error) {
	var max *int
	err := r.DB(ctx).
		Model(&models.CartLine{}).
		Where("user_uuid = ?", userID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

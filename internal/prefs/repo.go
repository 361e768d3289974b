package prefs

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gracebuffer/storefront/internal/repo"
	"github.com/gracebuffer/storefront/pkg/db/models"
	"github.com/gracebuffer/storefront/pkg/enums"
)

// Repository persists shopper display preferences.
type Repository struct {
	repo.Base
}

// NewRepository binds the repository to the provided DB handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Theme returns the shopper's saved theme, defaulting to light.
func (r *Repository) Theme(ctx context.Context, userID uuid.UUID) (enums.Theme, error) {
	var row models.Preference
	err := r.DB(ctx).First(&row, "user_uuid = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return enums.ThemeLight, nil
		}
		return enums.ThemeLight, err
	}
	if !row.Theme.IsValid() {
		return enums.ThemeLight, nil
	}
	return row.Theme, nil
}

// SetTheme upserts the shopper's theme.
func (r *Repository) SetTheme(ctx context.Context, userID uuid.UUID, theme enums.Theme) error {
	if !theme.IsValid() {
		return errors.New("invalid theme")
	}
	row := models.Preference{UserUUID: userID, Theme: theme}
	return r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_uuid"}},
		DoUpdates: clause.AssignmentColumns([]string{"theme", "updated_at"}),
	}).Create(&row).Error
}

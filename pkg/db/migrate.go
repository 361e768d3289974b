package db

import (
	"context"
	"fmt"

	"github.com/gracebuffer/storefront/pkg/db/models"
	"github.com/gracebuffer/storefront/pkg/logger"
)

// Migrate brings the local state store schema up to date. The schema is
// small and additive, so GORM's auto-migration is sufficient.
func Migrate(ctx context.Context, client *Client, logg *logger.Logger) error {
	if client == nil {
		return fmt.Errorf("store client is required")
	}

	err := client.DB().WithContext(ctx).AutoMigrate(
		&models.CartLine{},
		&models.ShadowStock{},
		&models.UserRecord{},
		&models.OrderRecord{},
		&models.Preference{},
	)
	if err != nil {
		return fmt.Errorf("migrating local store: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "local store schema migrated")
	}
	return nil
}

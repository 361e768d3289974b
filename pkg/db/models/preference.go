package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/gracebuffer/storefront/pkg/enums"
)

// Preference stores the shopper's durable display settings.
type Preference struct {
	UserUUID  uuid.UUID   `gorm:"column:user_uuid;type:uuid;primaryKey"`
	Theme     enums.Theme `gorm:"column:theme;not null;default:'light'"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

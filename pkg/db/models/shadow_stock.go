package models

import (
	"time"

	"github.com/google/uuid"
)

// ShadowStock is the client-local cached copy of a product's remaining
// inventory, used to gate quantity controls without waiting on the server.
// It can diverge from server truth when the remote stock update is
// unreachable.
type ShadowStock struct {
	ProductUUID uuid.UUID `gorm:"column:product_uuid;type:uuid;primaryKey"`
	Stock       int       `gorm:"column:stock;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

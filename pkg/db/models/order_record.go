package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gracebuffer/storefront/pkg/enums"
)

// OrderRecord is the local order history entry appended when a detail-page
// order is confirmed.
type OrderRecord struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	UserUUID    uuid.UUID         `gorm:"column:user_uuid;type:uuid;not null;index"`
	ProductUUID uuid.UUID         `gorm:"column:product_uuid;type:uuid;not null"`
	ProductName string            `gorm:"column:product_name;not null"`
	Kind        enums.ProductKind `gorm:"column:kind;not null"`
	Quantity    int               `gorm:"column:quantity;not null"`
	SugarLevel  *enums.SugarLevel `gorm:"column:sugar_level"`
	Total       decimal.Decimal   `gorm:"column:total;type:numeric;not null"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime;index"`
}

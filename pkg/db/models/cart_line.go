package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gracebuffer/storefront/pkg/enums"
)

// CartLine persists one cart entry for a shopper. The cart is always
// written as a whole list; Position preserves the display order across
// reloads. Identity is (shopper, product, sugar level) so repeat adds of
// the same customization fold into the quantity.
type CartLine struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	UserUUID    uuid.UUID         `gorm:"column:user_uuid;type:uuid;not null;index:idx_cart_identity,unique"`
	ProductUUID uuid.UUID         `gorm:"column:product_uuid;type:uuid;not null;index:idx_cart_identity,unique"`
	SugarLevel  *enums.SugarLevel `gorm:"column:sugar_level;index:idx_cart_identity,unique"`
	Name        string            `gorm:"column:name;not null"`
	Price       decimal.Decimal   `gorm:"column:price;type:numeric;not null"`
	Quantity    int               `gorm:"column:quantity;not null;default:1"`
	Image       *string           `gorm:"column:image"`
	Position    int               `gorm:"column:position;not null"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectiveQuantity defaults a missing quantity to one, matching how the
// badge count treats legacy rows.
func (l CartLine) EffectiveQuantity() int {
	if l.Quantity < 1 {
		return 1
	}
	return l.Quantity
}

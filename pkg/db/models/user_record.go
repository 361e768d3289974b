package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRecord caches the logged-in shopper as returned by the remote API.
// It is the storefront's authentication check: no record, no cart writes.
type UserRecord struct {
	UserUUID    uuid.UUID `gorm:"column:user_uuid;type:uuid;primaryKey"`
	Email       string    `gorm:"column:email;not null"`
	Name        string    `gorm:"column:name"`
	AccessToken string    `gorm:"column:access_token;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryAddress is a saved destination in a customer's address book.
// One default per user, enforced in the service transaction.
type DeliveryAddress struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	SiteName    string    `gorm:"column:site_name;not null"`
	Address     string    `gorm:"column:address;not null"`
	ContactName *string   `gorm:"column:contact_name"`
	IsDefault   bool      `gorm:"column:is_default;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

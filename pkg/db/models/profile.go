package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the billing identity of a portal customer. The primary
// key is the auth user id, there is no separate surrogate.
type Profile struct {
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	CompanyName string    `gorm:"column:company_name;not null"`
	Email       string    `gorm:"column:email;not null"`
	TaxID       *string   `gorm:"column:tax_id"`
	Address     *string   `gorm:"column:address"`
	City        *string   `gorm:"column:city"`
	Zip         *string   `gorm:"column:zip"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

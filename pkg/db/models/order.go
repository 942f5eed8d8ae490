package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/harpsglobal/harps-portal-backend/pkg/enums"
	"github.com/harpsglobal/harps-portal-backend/pkg/types"
)

// Order is the submitted header. ShippingAddress is a snapshot taken at
// submission; TotalAmount is the net HUF sum of the items.
type Order struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index"`
	OrderNumber     string                `gorm:"column:order_number;not null;uniqueIndex"`
	Status          enums.OrderStatus     `gorm:"column:status;type:text;not null;default:'pending'"`
	TotalAmount     int64                 `gorm:"column:total_amount;not null"`
	ShippingAddress types.ShippingAddress `gorm:"column:shipping_address;type:jsonb"`
	Comment         *string               `gorm:"column:comment"`
	Items           []OrderItem           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

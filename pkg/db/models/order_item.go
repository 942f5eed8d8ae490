package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem captures one product line frozen at submission. Rows are
// write-once.
type OrderItem struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID  `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   *uuid.UUID `gorm:"column:product_id;type:uuid"`
	ProductName string     `gorm:"column:product_name;not null"`
	SKU         string     `gorm:"column:sku;not null"`
	Size        string     `gorm:"column:size;not null"`
	Quantity    int        `gorm:"column:quantity;not null"`
	UnitPrice   int64      `gorm:"column:unit_price;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}

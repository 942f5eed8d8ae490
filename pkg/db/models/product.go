package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/harpsglobal/harps-portal-backend/pkg/types"
)

// Product is a catalog listing. Display prices are derived from
// BasePrice and the packaging counts in Specifications, never stored.
type Product struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU            string         `gorm:"column:sku;not null;uniqueIndex"`
	Name           string         `gorm:"column:name;not null"`
	Category       string         `gorm:"column:category;not null"`
	BasePrice      int64          `gorm:"column:base_price;not null"`
	ImageURL       *string        `gorm:"column:image_url"`
	Specifications types.JSONMap  `gorm:"column:specifications;type:jsonb"`
	Variants       pq.StringArray `gorm:"column:variants;type:text[]"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

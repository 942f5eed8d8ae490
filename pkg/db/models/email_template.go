package models

import (
	"time"

	"github.com/lib/pq"
)

// EmailTemplate is an editable notification body. Slug doubles as the
// mail kind that selects it.
type EmailTemplate struct {
	Slug          string         `gorm:"column:slug;primaryKey"`
	Name          string         `gorm:"column:name;not null"`
	Subject       string         `gorm:"column:subject;not null"`
	Body          string         `gorm:"column:body;not null"`
	IsActive      bool           `gorm:"column:is_active;not null;default:true"`
	VariablesHint pq.StringArray `gorm:"column:variables_hint;type:text[]"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import "time"

// AppSetting is a key/value knob editable from the admin surface, e.g.
// warehouse_address for pickup orders.
type AppSetting struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/harpsglobal/harps-portal-backend/pkg/enums"
)

// SupportTicket is a customer-raised issue handled by the back office.
type SupportTicket struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID          `gorm:"column:user_id;type:uuid;not null;index"`
	Subject   string             `gorm:"column:subject;not null"`
	Message   string             `gorm:"column:message;not null"`
	Status    enums.TicketStatus `gorm:"column:status;type:text;not null;default:'open'"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

package tickets

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	"github.com/harpsglobal/harps-portal-backend/pkg/enums"
	"github.com/harpsglobal/harps-portal-backend/pkg/pagination"
)

// ListFilters narrows a ticket listing.
type ListFilters struct {
	Status *enums.TicketStatus
}

// TicketList wraps one page of a customer's tickets plus the next cursor.
type TicketList struct {
	Tickets    []models.SupportTicket `json:"tickets"`
	NextCursor string                 `json:"next_cursor,omitempty"`
}

// AdminTicketRow is one row of the admin listing with the reporter
// profile joined in.
type AdminTicketRow struct {
	ID          uuid.UUID          `json:"id"`
	UserID      uuid.UUID          `json:"user_id"`
	Subject     string             `json:"subject"`
	Message     string             `json:"message"`
	Status      enums.TicketStatus `json:"status"`
	CompanyName string             `json:"company_name"`
	Email       string             `json:"email"`
	CreatedAt   time.Time          `json:"created_at"`
}

// AdminTicketList wraps one page of the admin listing.
type AdminTicketList struct {
	Tickets    []AdminTicketRow `json:"tickets"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// Repository defines persistence operations for support tickets.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, ticket *models.SupportTicket) (*models.SupportTicket, error)
	Find(ctx context.Context, id uuid.UUID) (*models.SupportTicket, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params, filters ListFilters) (*TicketList, error)
	ListAll(ctx context.Context, params pagination.Params, filters ListFilters) (*AdminTicketList, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.TicketStatus) error
}

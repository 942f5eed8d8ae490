package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	"github.com/harpsglobal/harps-portal-backend/pkg/enums"
)

// SubmitInput carries a checkout request. Exactly one of AddressID and
// Pickup selects the shipping destination; drafts may omit both.
type SubmitInput struct {
	Status    enums.OrderStatus
	AddressID *uuid.UUID
	Pickup    bool
	Comment   *string
}

// ListFilters narrows an order listing.
type ListFilters struct {
	Status *enums.OrderStatus
}

// OrderList wraps one page of a customer's orders plus the next cursor.
type OrderList struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// AdminOrderRow is one row of the admin listing with the buyer profile
// joined in.
type AdminOrderRow struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	OrderNumber string            `json:"order_number"`
	Status      enums.OrderStatus `json:"status"`
	TotalAmount int64             `json:"total_amount"`
	CompanyName string            `json:"company_name"`
	Email       string            `json:"email"`
	CreatedAt   time.Time         `json:"created_at"`
}

// AdminOrderList wraps one page of the admin listing.
type AdminOrderList struct {
	Orders     []AdminOrderRow `json:"orders"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

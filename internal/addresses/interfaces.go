package addresses

import (
	"context"

	"github.com/google/uuid"
	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for delivery addresses.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.DeliveryAddress, error)
	Find(ctx context.Context, id uuid.UUID) (*models.DeliveryAddress, error)
	Create(ctx context.Context, address *models.DeliveryAddress) (*models.DeliveryAddress, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ClearDefaults(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ListFilters narrows the catalog listing.
type ListFilters struct {
	Query    string
	Category string
}

// Repository defines persistence operations for the product catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, filters ListFilters) ([]models.Product, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySKU(ctx context.Context, sku string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	UpsertBySKU(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

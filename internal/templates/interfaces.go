package templates

import (
	"context"

	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for email templates.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context) ([]models.EmailTemplate, error)
	FindBySlug(ctx context.Context, slug string) (*models.EmailTemplate, error)
	Update(ctx context.Context, slug string, updates map[string]any) error
}

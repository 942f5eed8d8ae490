package templates

import (
	"context"

	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a template repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) List(ctx context.Context) ([]models.EmailTemplate, error) {
	var rows []models.EmailTemplate
	err := r.db.WithContext(ctx).
		Order("slug ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*models.EmailTemplate, error) {
	var row models.EmailTemplate
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) Update(ctx context.Context, slug string, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.EmailTemplate{}).
		Where("slug = ?", slug).
		Updates(updates).Error
}

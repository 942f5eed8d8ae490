package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyWarehouseAddress configures the pickup destination used when a
// customer submits an order without a delivery address.
const KeyWarehouseAddress = "warehouse_address"

// Repository defines persistence operations for app settings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Find(ctx context.Context, key string) (*models.AppSetting, error)
	Upsert(ctx context.Context, setting *models.AppSetting) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a settings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Find(ctx context.Context, key string) (*models.AppSetting, error) {
	var row models.AppSetting
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) Upsert(ctx context.Context, setting *models.AppSetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(setting).Error
}

// Service reads and writes portal-wide settings.
type Service interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	WarehouseAddress(ctx context.Context) (string, error)
}

type service struct {
	repo Repository
}

// NewService builds a settings service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "setting key required")
	}
	row, err := s.repo.Find(ctx, key)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "setting not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load setting")
	}
	return row.Value, nil
}

func (s *service) Put(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "setting key required")
	}
	if strings.TrimSpace(value) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "setting value required")
	}
	err := s.repo.Upsert(ctx, &models.AppSetting{Key: key, Value: value})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store setting")
	}
	return nil
}

// WarehouseAddress returns the pickup destination, or a typed not-found
// error when pickup is unconfigured.
func (s *service) WarehouseAddress(ctx context.Context) (string, error) {
	return s.Get(ctx, KeyWarehouseAddress)
}

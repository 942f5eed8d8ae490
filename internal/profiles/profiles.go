package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines persistence operations for customer profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Find(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a profile repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Find(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var row models.Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) Upsert(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"company_name", "email", "tax_id", "address", "city", "zip", "updated_at"}),
		}).
		Create(profile).Error
}

// UpdateInput carries the editable profile fields. Nil means keep.
type UpdateInput struct {
	CompanyName *string
	TaxID       *string
	Address     *string
	City        *string
	Zip         *string
}

// Service owns the customer billing identity.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, email string, input UpdateInput) (*models.Profile, error)
}

type service struct {
	repo Repository
}

// NewService builds a profile service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	row, err := s.repo.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return row, nil
}

// Update writes the profile, creating it on first save. The email always
// tracks the token claim so exports and notifications stay reachable.
func (s *service) Update(ctx context.Context, userID uuid.UUID, email string, input UpdateInput) (*models.Profile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.CompanyName != nil && strings.TrimSpace(*input.CompanyName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name cannot be empty")
	}

	current, err := s.repo.Find(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	if current == nil {
		current = &models.Profile{UserID: userID}
	}

	current.Email = email
	if input.CompanyName != nil {
		current.CompanyName = *input.CompanyName
	}
	if input.TaxID != nil {
		current.TaxID = input.TaxID
	}
	if input.Address != nil {
		current.Address = input.Address
	}
	if input.City != nil {
		current.City = input.City
	}
	if input.Zip != nil {
		current.Zip = input.Zip
	}

	if err := s.repo.Upsert(ctx, current); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store profile")
	}
	return current, nil
}

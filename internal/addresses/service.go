package addresses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CreateInput carries the fields for a new delivery address.
type CreateInput struct {
	SiteName    string
	Address     string
	ContactName *string
	IsDefault   bool
}

// UpdateInput carries editable address fields. Nil means keep.
type UpdateInput struct {
	SiteName    *string
	Address     *string
	ContactName *string
	IsDefault   *bool
}

// Service owns the customer address book. Only the owner can touch an
// address.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.DeliveryAddress, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*models.DeliveryAddress, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*models.DeliveryAddress, error)
	Update(ctx context.Context, userID, id uuid.UUID, input UpdateInput) (*models.DeliveryAddress, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds an address service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("addresses repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.DeliveryAddress, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (*models.DeliveryAddress, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
	}
	if row.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "address does not belong to user")
	}
	return row, nil
}

// Create stores the address; when it is flagged default, every other
// default of the user is cleared in the same transaction.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*models.DeliveryAddress, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if strings.TrimSpace(input.SiteName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "site name required")
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address required")
	}

	address := &models.DeliveryAddress{
		UserID:      userID,
		SiteName:    strings.TrimSpace(input.SiteName),
		Address:     strings.TrimSpace(input.Address),
		ContactName: input.ContactName,
		IsDefault:   input.IsDefault,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if input.IsDefault {
			if err := repo.ClearDefaults(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear default addresses")
			}
		}
		if _, err := repo.Create(ctx, address); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create address")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, input UpdateInput) (*models.DeliveryAddress, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.SiteName != nil {
		if strings.TrimSpace(*input.SiteName) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "site name cannot be empty")
		}
		updates["site_name"] = strings.TrimSpace(*input.SiteName)
	}
	if input.Address != nil {
		if strings.TrimSpace(*input.Address) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "address cannot be empty")
		}
		updates["address"] = strings.TrimSpace(*input.Address)
	}
	if input.ContactName != nil {
		updates["contact_name"] = *input.ContactName
	}
	if input.IsDefault != nil {
		updates["is_default"] = *input.IsDefault
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if input.IsDefault != nil && *input.IsDefault {
			if err := repo.ClearDefaults(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear default addresses")
			}
		}
		if err := repo.Update(ctx, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update address")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete address")
	}
	return nil
}

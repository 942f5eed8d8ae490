package templates

import (
	"context"
	"fmt"
	"strings"

	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes the admin template surface plus the lookup used by the
// notification dispatcher.
type Service interface {
	List(ctx context.Context) ([]models.EmailTemplate, error)
	Get(ctx context.Context, slug string) (*models.EmailTemplate, error)
	Update(ctx context.Context, slug string, input UpdateInput) (*models.EmailTemplate, error)
}

// UpdateInput carries the editable template fields. Nil means keep.
type UpdateInput struct {
	Subject  *string
	Body     *string
	IsActive *bool
}

type service struct {
	repo Repository
}

// NewService builds a template service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("templates repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.EmailTemplate, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list templates")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, slug string) (*models.EmailTemplate, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "template slug required")
	}
	row, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "template not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load template")
	}
	return row, nil
}

func (s *service) Update(ctx context.Context, slug string, input UpdateInput) (*models.EmailTemplate, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "template slug required")
	}

	updates := map[string]any{}
	if input.Subject != nil {
		if strings.TrimSpace(*input.Subject) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject cannot be empty")
		}
		updates["subject"] = *input.Subject
	}
	if input.Body != nil {
		if strings.TrimSpace(*input.Body) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "body cannot be empty")
		}
		updates["body"] = *input.Body
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	if _, err := s.Get(ctx, slug); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, slug, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update template")
	}
	return s.Get(ctx, slug)
}

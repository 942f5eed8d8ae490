package tickets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harpsglobal/harps-portal-backend/internal/mailer"
	"github.com/harpsglobal/harps-portal-backend/internal/profiles"
	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	"github.com/harpsglobal/harps-portal-backend/pkg/enums"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"github.com/harpsglobal/harps-portal-backend/pkg/logger"
	"github.com/harpsglobal/harps-portal-backend/pkg/pagination"
)

// CreateInput carries a new support request.
type CreateInput struct {
	Subject string
	Message string
}

// Service owns the support ticket workflow.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*models.SupportTicket, error)
	ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params, filters ListFilters) (*TicketList, error)
	ListAll(ctx context.Context, params pagination.Params, filters ListFilters) (*AdminTicketList, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.TicketStatus) (*models.SupportTicket, error)
}

type service struct {
	repo     Repository
	profiles profiles.Service
	notifier mailer.Notifier
	log      *logger.Logger
}

// NewService builds a tickets service with the required dependencies.
func NewService(repo Repository, profilesSvc profiles.Service, notifier mailer.Notifier, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tickets repository required")
	}
	if profilesSvc == nil {
		return nil, fmt.Errorf("profiles service required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, profiles: profilesSvc, notifier: notifier, log: log}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*models.SupportTicket, error) {
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if subject == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ticket subject is required")
	}
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ticket message is required")
	}

	ticket, err := s.repo.Create(ctx, &models.SupportTicket{
		UserID:  userID,
		Subject: subject,
		Message: message,
		Status:  enums.TicketStatusOpen,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to store ticket")
	}

	data := map[string]string{
		"subject": ticket.Subject,
		"message": ticket.Message,
	}
	if profile, err := s.profiles.Get(ctx, userID); err == nil && profile != nil {
		data["company_name"] = profile.CompanyName
		data["email"] = profile.Email
	} else if err != nil {
		s.log.Warn(s.log.WithUserID(ctx, userID.String()), "reporter profile unavailable for ticket notification")
	}
	s.notifier.NewTicket(data)
	return ticket, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params, filters ListFilters) (*TicketList, error) {
	list, err := s.repo.ListByUser(ctx, userID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list tickets")
	}
	return list, nil
}

func (s *service) ListAll(ctx context.Context, params pagination.Params, filters ListFilters) (*AdminTicketList, error) {
	list, err := s.repo.ListAll(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list tickets")
	}
	return list, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.TicketStatus) (*models.SupportTicket, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid ticket status")
	}

	ticket, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load ticket")
	}
	if ticket.Status == status {
		return ticket, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update ticket status")
	}
	ticket.Status = status
	return ticket, nil
}

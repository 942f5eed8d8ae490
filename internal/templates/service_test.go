package templates

import (
	"context"
	"testing"

	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubTemplatesRepo struct {
	rows    map[string]*models.EmailTemplate
	updates map[string]any
}

func (s *stubTemplatesRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubTemplatesRepo) List(ctx context.Context) ([]models.EmailTemplate, error) {
	out := make([]models.EmailTemplate, 0, len(s.rows))
	for _, row := range s.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *stubTemplatesRepo) FindBySlug(ctx context.Context, slug string) (*models.EmailTemplate, error) {
	row, ok := s.rows[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (s *stubTemplatesRepo) Update(ctx context.Context, slug string, updates map[string]any) error {
	s.updates = updates
	row := s.rows[slug]
	if subject, ok := updates["subject"].(string); ok {
		row.Subject = subject
	}
	if body, ok := updates["body"].(string); ok {
		row.Body = body
	}
	if active, ok := updates["is_active"].(bool); ok {
		row.IsActive = active
	}
	return nil
}

func newTemplatesService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceUpdateAppliesFields(t *testing.T) {
	repo := &stubTemplatesRepo{rows: map[string]*models.EmailTemplate{
		"new_order": {Slug: "new_order", Subject: "old", Body: "old body", IsActive: true},
	}}
	svc := newTemplatesService(t, repo)

	subject := "Rendelés rögzítve: {{order_number}}"
	active := false
	got, err := svc.Update(context.Background(), "new_order", UpdateInput{Subject: &subject, IsActive: &active})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Subject != subject {
		t.Fatalf("subject = %q", got.Subject)
	}
	if got.IsActive {
		t.Fatal("expected template deactivated")
	}
	if got.Body != "old body" {
		t.Fatalf("body should be untouched, got %q", got.Body)
	}
}

func TestServiceUpdateRejectsEmptyChanges(t *testing.T) {
	repo := &stubTemplatesRepo{rows: map[string]*models.EmailTemplate{
		"new_order": {Slug: "new_order", Subject: "s", Body: "b"},
	}}
	svc := newTemplatesService(t, repo)

	_, err := svc.Update(context.Background(), "new_order", UpdateInput{})
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	empty := "   "
	_, err = svc.Update(context.Background(), "new_order", UpdateInput{Subject: &empty})
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank subject, got %v", err)
	}
}

func TestServiceGetUnknownSlug(t *testing.T) {
	svc := newTemplatesService(t, &stubTemplatesRepo{rows: map[string]*models.EmailTemplate{}})

	_, err := svc.Get(context.Background(), "missing")
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

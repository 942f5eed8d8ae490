package addresses

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubAddressesRepo struct {
	rows           map[uuid.UUID]*models.DeliveryAddress
	clearedFor     []uuid.UUID
	updatesApplied map[string]any
}

func newStubAddressesRepo() *stubAddressesRepo {
	return &stubAddressesRepo{rows: map[uuid.UUID]*models.DeliveryAddress{}}
}

func (s *stubAddressesRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubAddressesRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.DeliveryAddress, error) {
	out := []models.DeliveryAddress{}
	for _, row := range s.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (s *stubAddressesRepo) Find(ctx context.Context, id uuid.UUID) (*models.DeliveryAddress, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (s *stubAddressesRepo) Create(ctx context.Context, address *models.DeliveryAddress) (*models.DeliveryAddress, error) {
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	copied := *address
	s.rows[address.ID] = &copied
	return address, nil
}

func (s *stubAddressesRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updatesApplied = updates
	row := s.rows[id]
	if site, ok := updates["site_name"].(string); ok {
		row.SiteName = site
	}
	if isDefault, ok := updates["is_default"].(bool); ok {
		row.IsDefault = isDefault
	}
	return nil
}

func (s *stubAddressesRepo) ClearDefaults(ctx context.Context, userID uuid.UUID) error {
	s.clearedFor = append(s.clearedFor, userID)
	for _, row := range s.rows {
		if row.UserID == userID {
			row.IsDefault = false
		}
	}
	return nil
}

func (s *stubAddressesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newAddressesService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, fakeTxRunner{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceCreateDefaultClearsOthers(t *testing.T) {
	repo := newStubAddressesRepo()
	svc := newAddressesService(t, repo)
	userID := uuid.New()

	first, err := svc.Create(context.Background(), userID, CreateInput{SiteName: "A", Address: "Addr A", IsDefault: true})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, err = svc.Create(context.Background(), userID, CreateInput{SiteName: "B", Address: "Addr B", IsDefault: true})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if len(repo.clearedFor) != 2 {
		t.Fatalf("expected defaults cleared on each default create, got %v", repo.clearedFor)
	}
	reloaded, err := svc.Get(context.Background(), userID, first.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if reloaded.IsDefault {
		t.Fatal("first address should have lost its default flag")
	}
}

func TestServiceOwnershipEnforced(t *testing.T) {
	repo := newStubAddressesRepo()
	svc := newAddressesService(t, repo)
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, CreateInput{SiteName: "A", Address: "Addr"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, err = svc.Get(context.Background(), uuid.New(), created.ID)
	if te := pkgerrors.As(err); te == nil || te.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for foreign user, got %v", err)
	}

	if err := svc.Delete(context.Background(), uuid.New(), created.ID); pkgerrors.As(err) == nil {
		t.Fatalf("expected error deleting foreign address, got %v", err)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := newAddressesService(t, newStubAddressesRepo())
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, CreateInput{Address: "no site"})
	if te := pkgerrors.As(err); te == nil || te.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.Create(context.Background(), userID, CreateInput{SiteName: "no addr"})
	if te := pkgerrors.As(err); te == nil || te.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

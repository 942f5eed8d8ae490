package settings

import (
	"context"
	"testing"

	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubSettingsRepo struct {
	rows map[string]string
}

func (s *stubSettingsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubSettingsRepo) Find(ctx context.Context, key string) (*models.AppSetting, error) {
	value, ok := s.rows[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.AppSetting{Key: key, Value: value}, nil
}

func (s *stubSettingsRepo) Upsert(ctx context.Context, setting *models.AppSetting) error {
	if s.rows == nil {
		s.rows = map[string]string{}
	}
	s.rows[setting.Key] = setting.Value
	return nil
}

func TestServicePutThenGet(t *testing.T) {
	svc, err := NewService(&stubSettingsRepo{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if err := svc.Put(context.Background(), KeyWarehouseAddress, "1044 Budapest, Ezred utca 2."); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, err := svc.WarehouseAddress(context.Background())
	if err != nil {
		t.Fatalf("WarehouseAddress returned error: %v", err)
	}
	if got != "1044 Budapest, Ezred utca 2." {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestServiceGetMissingKey(t *testing.T) {
	svc, err := NewService(&stubSettingsRepo{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.WarehouseAddress(context.Background())
	te := pkgerrors.As(err)
	if te == nil || te.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServicePutValidation(t *testing.T) {
	svc, err := NewService(&stubSettingsRepo{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if err := svc.Put(context.Background(), "", "x"); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.Put(context.Background(), "k", "  "); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error, got %v", err)
	}
}

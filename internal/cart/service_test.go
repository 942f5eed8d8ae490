package cart

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/harpsglobal/harps-portal-backend/internal/catalog"
	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"github.com/lib/pq"
)

type stubCatalog struct {
	products map[uuid.UUID]catalog.ProductView
}

func (s *stubCatalog) List(ctx context.Context, filters catalog.ListFilters) ([]catalog.ProductView, error) {
	panic("not implemented")
}

func (s *stubCatalog) Get(ctx context.Context, id uuid.UUID) (*catalog.ProductView, error) {
	view, ok := s.products[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &view, nil
}

func (s *stubCatalog) Create(ctx context.Context, input catalog.CreateInput) (*catalog.ProductView, error) {
	panic("not implemented")
}

func (s *stubCatalog) Update(ctx context.Context, id uuid.UUID, input catalog.UpdateInput) (*catalog.ProductView, error) {
	panic("not implemented")
}

func (s *stubCatalog) Delete(ctx context.Context, id uuid.UUID) error {
	panic("not implemented")
}

func (s *stubCatalog) Import(ctx context.Context, file io.Reader) (*catalog.ImportResult, error) {
	panic("not implemented")
}

func newCartFixture(t *testing.T) (Service, uuid.UUID) {
	t.Helper()

	productID := uuid.New()
	view := catalog.ProductView{
		Product: models.Product{
			ID:       productID,
			SKU:      "NIT-100",
			Name:     "Nitrile glove",
			Variants: pq.StringArray{"S", "M", "L"},
		},
		Prices: catalog.Prices{Base: 14500, Unit: 290, Carton: 87000},
	}
	svc, err := NewService(NewStore(), &stubCatalog{products: map[uuid.UUID]catalog.ProductView{productID: view}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, productID
}

func TestServiceAddCapturesCartonPrice(t *testing.T) {
	svc, productID := newCartFixture(t)
	userID := uuid.New()

	snapshot, err := svc.Add(context.Background(), userID, AddInput{ProductID: productID, Size: "M", Quantity: 2})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if len(snapshot.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(snapshot.Lines))
	}
	line := snapshot.Lines[0]
	if line.UnitPrice != 87000 {
		t.Fatalf("unit price = %d, want carton price 87000", line.UnitPrice)
	}
	if snapshot.Total != 174000 {
		t.Fatalf("total = %d, want 174000", snapshot.Total)
	}
}

func TestServiceAddValidation(t *testing.T) {
	svc, productID := newCartFixture(t)
	userID := uuid.New()

	_, err := svc.Add(context.Background(), userID, AddInput{ProductID: productID, Size: "M", Quantity: 0})
	if te := pkgerrors.As(err); te == nil || te.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}

	_, err = svc.Add(context.Background(), userID, AddInput{ProductID: productID, Size: "XXL", Quantity: 1})
	if te := pkgerrors.As(err); te == nil || te.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown size, got %v", err)
	}

	_, err = svc.Add(context.Background(), userID, AddInput{ProductID: uuid.New(), Size: "M", Quantity: 1})
	if te := pkgerrors.As(err); te == nil || te.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown product, got %v", err)
	}
}

func TestServiceUpdateQuantityRules(t *testing.T) {
	svc, productID := newCartFixture(t)
	userID := uuid.New()

	if _, err := svc.Add(context.Background(), userID, AddInput{ProductID: productID, Size: "M", Quantity: 2}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	_, err := svc.UpdateQuantity(context.Background(), userID, productID, "M", -1)
	if te := pkgerrors.As(err); te == nil || te.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative quantity, got %v", err)
	}

	snapshot, err := svc.UpdateQuantity(context.Background(), userID, productID, "M", 0)
	if err != nil {
		t.Fatalf("UpdateQuantity returned error: %v", err)
	}
	if len(snapshot.Lines) != 1 || snapshot.Lines[0].Quantity != 0 {
		t.Fatalf("zero quantity must keep the line: %+v", snapshot)
	}

	_, err = svc.UpdateQuantity(context.Background(), userID, productID, "S", 1)
	if te := pkgerrors.As(err); te == nil || te.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing line, got %v", err)
	}
}

func TestServiceRemoveAndClear(t *testing.T) {
	svc, productID := newCartFixture(t)
	userID := uuid.New()

	if _, err := svc.Add(context.Background(), userID, AddInput{ProductID: productID, Size: "M", Quantity: 1}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	snapshot, err := svc.Remove(context.Background(), userID, productID, "M")
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if len(snapshot.Lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", snapshot)
	}

	if err := svc.Clear(context.Background(), userID); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
}

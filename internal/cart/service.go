package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harpsglobal/harps-portal-backend/internal/catalog"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
)

// AddInput describes a line being placed into the cart.
type AddInput struct {
	ProductID uuid.UUID
	Size      string
	Quantity  int
}

// Service prices and mutates the session cart.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (Snapshot, error)
	Add(ctx context.Context, userID uuid.UUID, input AddInput) (Snapshot, error)
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, size string, quantity int) (Snapshot, error)
	Remove(ctx context.Context, userID, productID uuid.UUID, size string) (Snapshot, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	store   *Store
	catalog catalog.Service
}

// NewService builds a cart service with the required dependencies.
func NewService(store *Store, catalogSvc catalog.Service) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	return &service{store: store, catalog: catalogSvc}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (Snapshot, error) {
	if userID == uuid.Nil {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return s.store.Snapshot(userID), nil
}

// Add prices the line from the catalog at insert time; the carton price
// captured here stays on the line even if the product is repriced later.
func (s *service) Add(ctx context.Context, userID uuid.UUID, input AddInput) (Snapshot, error) {
	if userID == uuid.Nil {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Quantity <= 0 {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.catalog.Get(ctx, input.ProductID)
	if err != nil {
		return Snapshot{}, err
	}

	size := strings.TrimSpace(input.Size)
	if len(product.Variants) > 0 && !hasVariant(product.Variants, size) {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown product size")
	}

	s.store.Add(userID, Line{
		ProductID:   product.ID,
		ProductName: product.Name,
		SKU:         product.SKU,
		Size:        size,
		Quantity:    input.Quantity,
		UnitPrice:   product.Prices.Carton,
	})
	return s.store.Snapshot(userID), nil
}

func (s *service) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, size string, quantity int) (Snapshot, error) {
	if userID == uuid.Nil {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if quantity < 0 {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if !s.store.SetQuantity(userID, productID, size, quantity) {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	return s.store.Snapshot(userID), nil
}

func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID, size string) (Snapshot, error) {
	if userID == uuid.Nil {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !s.store.Remove(userID, productID, size) {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	return s.store.Snapshot(userID), nil
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	s.store.Clear(userID)
	return nil
}

func hasVariant(variants []string, size string) bool {
	for _, v := range variants {
		if v == size {
			return true
		}
	}
	return false
}

package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/harpsglobal/harps-portal-backend/api/middleware"
	cartsvc "github.com/harpsglobal/harps-portal-backend/internal/cart"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"github.com/harpsglobal/harps-portal-backend/pkg/enums"
)

type stubCartService struct {
	snapshot cartsvc.Snapshot
	addErr   error
	added    []cartsvc.AddInput
}

func (s *stubCartService) Get(ctx context.Context, userID uuid.UUID) (cartsvc.Snapshot, error) {
	return s.snapshot, nil
}

func (s *stubCartService) Add(ctx context.Context, userID uuid.UUID, input cartsvc.AddInput) (cartsvc.Snapshot, error) {
	if s.addErr != nil {
		return cartsvc.Snapshot{}, s.addErr
	}
	s.added = append(s.added, input)
	return s.snapshot, nil
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, size string, quantity int) (cartsvc.Snapshot, error) {
	return s.snapshot, nil
}

func (s *stubCartService) Remove(ctx context.Context, userID, productID uuid.UUID, size string) (cartsvc.Snapshot, error) {
	return s.snapshot, nil
}

func (s *stubCartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	ctx := middleware.WithIdentity(req.Context(), uuid.New(), "buyer@clinic.hu", enums.UserRoleCustomer.String())
	return req.WithContext(ctx)
}

func TestCartFetchReturnsSnapshot(t *testing.T) {
	svc := &stubCartService{snapshot: cartsvc.Snapshot{
		Lines: []cartsvc.Line{{ProductID: uuid.New(), ProductName: "Nitrile Glove", Size: "M", Quantity: 2, UnitPrice: 870}},
		Total: 1740,
	}}
	handler := CartFetch(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data cartsvc.Snapshot `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != 1740 {
		t.Fatalf("unexpected total: %d", envelope.Data.Total)
	}
}

func TestCartFetchRequiresIdentity(t *testing.T) {
	handler := CartFetch(&stubCartService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCartAddLineCreatesLine(t *testing.T) {
	productID := uuid.New()
	svc := &stubCartService{}
	handler := CartAddLine(svc, nil)

	body := `{"product_id":"` + productID.String() + `","size":"L","quantity":3}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if len(svc.added) != 1 {
		t.Fatalf("expected one add call, got %d", len(svc.added))
	}
	if svc.added[0].ProductID != productID || svc.added[0].Quantity != 3 {
		t.Fatalf("unexpected add input: %+v", svc.added[0])
	}
}

func TestCartAddLineRejectsZeroQuantity(t *testing.T) {
	handler := CartAddLine(&stubCartService{}, nil)

	body := `{"product_id":"` + uuid.NewString() + `","size":"L","quantity":0}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddLinePropagatesServiceError(t *testing.T) {
	svc := &stubCartService{addErr: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	handler := CartAddLine(svc, nil)

	body := `{"product_id":"` + uuid.NewString() + `","size":"L","quantity":1}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

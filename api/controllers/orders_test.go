package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harpsglobal/harps-portal-backend/internal/invoice"
	"github.com/harpsglobal/harps-portal-backend/internal/orders"
	"github.com/harpsglobal/harps-portal-backend/internal/profiles"
	"github.com/harpsglobal/harps-portal-backend/pkg/config"
	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	"github.com/harpsglobal/harps-portal-backend/pkg/enums"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"github.com/harpsglobal/harps-portal-backend/pkg/logger"
	"github.com/harpsglobal/harps-portal-backend/pkg/pagination"
)

type stubOrdersService struct {
	order     *models.Order
	submitErr error
	getErr    error
	submitted []orders.SubmitInput
}

func (s *stubOrdersService) Submit(ctx context.Context, userID uuid.UUID, input orders.SubmitInput) (*models.Order, error) {
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	s.submitted = append(s.submitted, input)
	return s.order, nil
}

func (s *stubOrdersService) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params, filters orders.ListFilters) (*orders.OrderList, error) {
	list := &orders.OrderList{}
	if s.order != nil {
		list.Orders = []models.Order{*s.order}
	}
	return list, nil
}

func (s *stubOrdersService) ListAll(ctx context.Context, params pagination.Params, filters orders.ListFilters) (*orders.AdminOrderList, error) {
	return &orders.AdminOrderList{}, nil
}

func (s *stubOrdersService) Get(ctx context.Context, requesterID uuid.UUID, admin bool, id uuid.UUID) (*models.Order, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.order, nil
}

func (s *stubOrdersService) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	return s.order, nil
}

type stubProfilesService struct {
	profile *models.Profile
	err     error
}

func (s *stubProfilesService) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.profile, s.err
}

func (s *stubProfilesService) Update(ctx context.Context, userID uuid.UUID, email string, input profiles.UpdateInput) (*models.Profile, error) {
	panic("not expected")
}

func testOrder() *models.Order {
	return &models.Order{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		OrderNumber: "ORD-000123-7",
		Status:      enums.OrderStatusPending,
		TotalAmount: 174000,
		Items: []models.OrderItem{
			{ProductName: "Nitrile Glove", SKU: "NG-100", Size: "M", Quantity: 2, UnitPrice: 87000},
		},
	}
}

func discardLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestOrdersSubmitCreatesOrder(t *testing.T) {
	svc := &stubOrdersService{order: testOrder()}
	handler := OrdersSubmit(svc, nil)

	addressID := uuid.NewString()
	body := `{"status":"pending","address_id":"` + addressID + `"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/orders", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(svc.submitted) != 1 {
		t.Fatalf("expected one submit call, got %d", len(svc.submitted))
	}
	input := svc.submitted[0]
	if input.Status != enums.OrderStatusPending {
		t.Fatalf("unexpected status: %s", input.Status)
	}
	if input.AddressID == nil || input.AddressID.String() != addressID {
		t.Fatalf("address id not forwarded: %+v", input.AddressID)
	}
}

func TestOrdersSubmitRejectsUnknownStatus(t *testing.T) {
	handler := OrdersSubmit(&stubOrdersService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/orders", `{"status":"shipped"}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrdersSubmitPropagatesEmptyCart(t *testing.T) {
	svc := &stubOrdersService{submitErr: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}
	handler := OrdersSubmit(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/orders", `{"status":"pending","pickup":true}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrdersGetReturnsDetail(t *testing.T) {
	order := testOrder()
	svc := &stubOrdersService{order: order}

	router := chi.NewRouter()
	router.Get("/api/v1/orders/{orderId}", OrdersGet(svc, nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/orders/"+order.ID.String(), ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data models.Order `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderNumber != order.OrderNumber {
		t.Fatalf("unexpected order number: %s", envelope.Data.OrderNumber)
	}
}

func TestOrdersGetForeignOrderForbidden(t *testing.T) {
	svc := &stubOrdersService{getErr: pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another account")}

	router := chi.NewRouter()
	router.Get("/api/v1/orders/{orderId}", OrdersGet(svc, nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/orders/"+uuid.NewString(), ""))

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestOrderExportPDFStreamsAttachment(t *testing.T) {
	order := testOrder()
	invoiceSvc, err := invoice.NewService(config.CompanyConfig{Name: "HARPS Global Kft."})
	if err != nil {
		t.Fatalf("invoice service: %v", err)
	}
	profilesSvc := &stubProfilesService{profile: &models.Profile{UserID: order.UserID, CompanyName: "Clinic Kft."}}

	router := chi.NewRouter()
	router.Get("/api/v1/orders/{orderId}/export/pdf", OrderExportPDF(&stubOrdersService{order: order}, profilesSvc, invoiceSvc, discardLogger()))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/orders/"+order.ID.String()+"/export/pdf", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Content-Disposition"); got == "" {
		t.Fatal("missing content disposition header")
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("body is not a pdf document")
	}
}

func TestOrderExportToleratesMissingProfile(t *testing.T) {
	order := testOrder()
	invoiceSvc, err := invoice.NewService(config.CompanyConfig{Name: "HARPS Global Kft."})
	if err != nil {
		t.Fatalf("invoice service: %v", err)
	}
	profilesSvc := &stubProfilesService{err: pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")}

	router := chi.NewRouter()
	router.Get("/api/v1/orders/{orderId}/export/xlsx", OrderExportXLSX(&stubOrdersService{order: order}, profilesSvc, invoiceSvc, discardLogger()))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/orders/"+order.ID.String()+"/export/xlsx", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(resp.Body.Bytes()) == 0 {
		t.Fatal("empty spreadsheet body")
	}
}

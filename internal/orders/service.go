package orders

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harpsglobal/harps-portal-backend/internal/addresses"
	"github.com/harpsglobal/harps-portal-backend/internal/cart"
	"github.com/harpsglobal/harps-portal-backend/internal/mailer"
	"github.com/harpsglobal/harps-portal-backend/internal/profiles"
	"github.com/harpsglobal/harps-portal-backend/internal/settings"
	"github.com/harpsglobal/harps-portal-backend/pkg/db/models"
	"github.com/harpsglobal/harps-portal-backend/pkg/enums"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"github.com/harpsglobal/harps-portal-backend/pkg/logger"
	"github.com/harpsglobal/harps-portal-backend/pkg/pagination"
	"github.com/harpsglobal/harps-portal-backend/pkg/types"
)

const (
	orderNumberConstraint  = "orders_order_number_key"
	maxOrderNumberAttempts = 5

	pickupSiteName = "Warehouse pickup"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns checkout and order lifecycle operations.
type Service interface {
	Submit(ctx context.Context, userID uuid.UUID, input SubmitInput) (*models.Order, error)
	ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params, filters ListFilters) (*OrderList, error)
	ListAll(ctx context.Context, params pagination.Params, filters ListFilters) (*AdminOrderList, error)
	Get(ctx context.Context, requesterID uuid.UUID, admin bool, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	cart      cart.Service
	addresses addresses.Service
	settings  settings.Service
	profiles  profiles.Service
	notifier  mailer.Notifier
	log       *logger.Logger
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, tx txRunner, cartSvc cart.Service, addressesSvc addresses.Service, settingsSvc settings.Service, profilesSvc profiles.Service, notifier mailer.Notifier, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if addressesSvc == nil {
		return nil, fmt.Errorf("addresses service required")
	}
	if settingsSvc == nil {
		return nil, fmt.Errorf("settings service required")
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
	return &service{
		repo:      repo,
		tx:        tx,
		cart:      cartSvc,
		addresses: addressesSvc,
		settings:  settingsSvc,
		profiles:  profilesSvc,
		notifier:  notifier,
		log:       log,
	}, nil
}

func (s *service) Submit(ctx context.Context, userID uuid.UUID, input SubmitInput) (*models.Order, error) {
	if input.Status != enums.OrderStatusDraft && input.Status != enums.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order status must be draft or pending")
	}

	snapshot, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(snapshot.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	shipping, err := s.resolveShipping(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		if line.Quantity <= 0 {
			continue
		}
		productID := line.ProductID
		items = append(items, models.OrderItem{
			ProductID:   &productID,
			ProductName: line.ProductName,
			SKU:         line.SKU,
			Size:        line.Size,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart has no lines with a positive quantity")
	}

	var order *models.Order
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		candidate := &models.Order{
			UserID:          userID,
			OrderNumber:     newOrderNumber(time.Now()),
			Status:          input.Status,
			TotalAmount:     snapshot.Total,
			ShippingAddress: shipping,
			Comment:         input.Comment,
		}
		err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			created, txErr := repo.CreateOrder(ctx, candidate)
			if txErr != nil {
				return txErr
			}
			rows := make([]models.OrderItem, len(items))
			copy(rows, items)
			for i := range rows {
				rows[i].OrderID = created.ID
			}
			return repo.CreateOrderItems(ctx, rows)
		})
		if err == nil {
			order = candidate
			break
		}
		if !pkgerrors.IsUniqueViolation(err, orderNumberConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to store order")
		}
	}
	if order == nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to allocate an order number")
	}

	if err := s.cart.Clear(ctx, userID); err != nil {
		s.log.Error(ctx, "failed to clear cart after order submission", err)
	}

	if order.Status == enums.OrderStatusPending {
		email, company := s.buyerContact(ctx, userID)
		s.notifier.NewOrder(email, map[string]string{
			"order_number": order.OrderNumber,
			"company_name": company,
			"total_amount": strconv.FormatInt(order.TotalAmount, 10),
		})
	}
	return order, nil
}

func (s *service) resolveShipping(ctx context.Context, userID uuid.UUID, input SubmitInput) (types.ShippingAddress, error) {
	if input.Pickup {
		pickup, err := s.settings.WarehouseAddress(ctx)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				return types.ShippingAddress{}, pkgerrors.New(pkgerrors.CodeValidation, "warehouse pickup is not configured")
			}
			return types.ShippingAddress{}, err
		}
		return types.ShippingAddress{SiteName: pickupSiteName, Address: pickup}, nil
	}

	if input.AddressID != nil {
		address, err := s.addresses.Get(ctx, userID, *input.AddressID)
		if err != nil {
			return types.ShippingAddress{}, err
		}
		snapshot := types.ShippingAddress{SiteName: address.SiteName, Address: address.Address}
		if address.ContactName != nil {
			snapshot.ContactName = *address.ContactName
		}
		return snapshot, nil
	}

	if input.Status == enums.OrderStatusPending {
		return types.ShippingAddress{}, pkgerrors.New(pkgerrors.CodeValidation, "a delivery address or warehouse pickup is required")
	}
	// drafts may be parked without a destination
	return types.ShippingAddress{}, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params, filters ListFilters) (*OrderList, error) {
	list, err := s.repo.ListByUser(ctx, userID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list orders")
	}
	return list, nil
}

func (s *service) ListAll(ctx context.Context, params pagination.Params, filters ListFilters) (*AdminOrderList, error) {
	list, err := s.repo.ListAll(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list orders")
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, requesterID uuid.UUID, admin bool, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load order")
	}
	if !admin && order.UserID != requesterID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another customer")
	}
	return order, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load order")
	}
	if order.Status == status {
		return order, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update order status")
	}
	order.Status = status

	email, company := s.buyerContact(ctx, order.UserID)
	s.notifier.OrderStatus(email, map[string]string{
		"order_number": order.OrderNumber,
		"company_name": company,
		"status":       status.String(),
	})
	return order, nil
}

// buyerContact looks up the owner's profile for notification data.
// Missing profiles degrade to empty fields instead of failing the
// operation.
func (s *service) buyerContact(ctx context.Context, userID uuid.UUID) (email, company string) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil || profile == nil {
		if err != nil {
			s.log.Warn(s.log.WithUserID(ctx, userID.String()), "buyer profile unavailable for notification")
		}
		return "", ""
	}
	return profile.Email, profile.CompanyName
}

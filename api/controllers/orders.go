package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/harpsglobal/harps-portal-backend/api/middleware"
	"github.com/harpsglobal/harps-portal-backend/api/responses"
	"github.com/harpsglobal/harps-portal-backend/api/validators"
	"github.com/harpsglobal/harps-portal-backend/internal/invoice"
	"github.com/harpsglobal/harps-portal-backend/internal/orders"
	"github.com/harpsglobal/harps-portal-backend/internal/profiles"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"github.com/harpsglobal/harps-portal-backend/pkg/logger"
)

type submitOrderPayload struct {
	Status    string  `json:"status" validate:"required,oneof=draft pending"`
	AddressID *string `json:"address_id,omitempty" validate:"omitempty,uuid"`
	Pickup    bool    `json:"pickup,omitempty"`
	Comment   *string `json:"comment,omitempty"`
}

// OrdersSubmit turns the caller's cart into an order.
func OrdersSubmit(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload submitOrderPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status, err := enumsOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := orders.SubmitInput{Status: status, Pickup: payload.Pickup, Comment: payload.Comment}
		if payload.AddressID != nil {
			addressID, err := uuid.Parse(*payload.AddressID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid address id"))
				return
			}
			input.AddressID = &addressID
		}

		order, err := svc.Submit(ctx, userID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrdersList returns the caller's order history, newest first.
func OrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		filters, err := orderListFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.ListMine(ctx, userID, params, filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// OrdersGet returns one order with its line items. Admins may fetch any
// order; customers only their own.
func OrdersGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		orderID, err := parseIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.Get(ctx, userID, middleware.IsAdmin(ctx), orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// OrderExportPDF streams the order as a PDF document.
func OrderExportPDF(ordersSvc orders.Service, profilesSvc profiles.Service, invoiceSvc invoice.Service, logg *logger.Logger) http.HandlerFunc {
	return exportOrder(ordersSvc, profilesSvc, invoiceSvc, logg, func(svc invoice.Service, snapshot invoice.Snapshot) (*invoice.Document, error) {
		return svc.PDF(snapshot)
	})
}

// OrderExportXLSX streams the order as a spreadsheet.
func OrderExportXLSX(ordersSvc orders.Service, profilesSvc profiles.Service, invoiceSvc invoice.Service, logg *logger.Logger) http.HandlerFunc {
	return exportOrder(ordersSvc, profilesSvc, invoiceSvc, logg, func(svc invoice.Service, snapshot invoice.Snapshot) (*invoice.Document, error) {
		return svc.XLSX(snapshot)
	})
}

func exportOrder(ordersSvc orders.Service, profilesSvc profiles.Service, invoiceSvc invoice.Service, logg *logger.Logger, render func(invoice.Service, invoice.Snapshot) (*invoice.Document, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if ordersSvc == nil || invoiceSvc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order export unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		orderID, err := parseIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := ordersSvc.Get(ctx, userID, middleware.IsAdmin(ctx), orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		snapshot := invoice.Snapshot{Order: *order}
		if profilesSvc != nil {
			buyer, err := profilesSvc.Get(ctx, order.UserID)
			if err != nil {
				if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
					responses.WriteError(ctx, logg, w, err)
					return
				}
				logg.Warn(logg.WithOrderNumber(ctx, order.OrderNumber), "buyer profile missing for export")
			} else {
				snapshot.Buyer = buyer
			}
		}

		doc, err := render(invoiceSvc, snapshot)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteAttachment(w, doc.Filename, doc.ContentType, doc.Data)
	}
}

func orderListFilters(r *http.Request) (orders.ListFilters, error) {
	filters := orders.ListFilters{}
	raw := strings.TrimSpace(r.URL.Query().Get("status"))
	if raw == "" {
		return filters, nil
	}
	status, err := enumsOrderStatus(raw)
	if err != nil {
		return filters, err
	}
	filters.Status = &status
	return filters, nil
}

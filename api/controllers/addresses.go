package controllers

import (
	"net/http"

	"github.com/harpsglobal/harps-portal-backend/api/responses"
	"github.com/harpsglobal/harps-portal-backend/api/validators"
	"github.com/harpsglobal/harps-portal-backend/internal/addresses"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"github.com/harpsglobal/harps-portal-backend/pkg/logger"
)

type createAddressPayload struct {
	SiteName    string  `json:"site_name" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	ContactName *string `json:"contact_name,omitempty"`
	IsDefault   bool    `json:"is_default,omitempty"`
}

type updateAddressPayload struct {
	SiteName    *string `json:"site_name,omitempty"`
	Address     *string `json:"address,omitempty"`
	ContactName *string `json:"contact_name,omitempty"`
	IsDefault   *bool   `json:"is_default,omitempty"`
}

// AddressesList returns the caller's address book.
func AddressesList(svc addresses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "addresses service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.List(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"addresses": list})
	}
}

// AddressCreate adds a delivery address for the caller.
func AddressCreate(svc addresses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "addresses service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createAddressPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		address, err := svc.Create(ctx, userID, addresses.CreateInput{
			SiteName:    payload.SiteName,
			Address:     payload.Address,
			ContactName: payload.ContactName,
			IsDefault:   payload.IsDefault,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, address)
	}
}

// AddressUpdate edits one of the caller's addresses.
func AddressUpdate(svc addresses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "addresses service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		addressID, err := parseIDParam(r, "addressId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateAddressPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		address, err := svc.Update(ctx, userID, addressID, addresses.UpdateInput{
			SiteName:    payload.SiteName,
			Address:     payload.Address,
			ContactName: payload.ContactName,
			IsDefault:   payload.IsDefault,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, address)
	}
}

// AddressDelete removes one of the caller's addresses.
func AddressDelete(svc addresses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "addresses service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		addressID, err := parseIDParam(r, "addressId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, userID, addressID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

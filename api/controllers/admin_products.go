package controllers

import (
	"net/http"

	"github.com/harpsglobal/harps-portal-backend/api/responses"
	"github.com/harpsglobal/harps-portal-backend/api/validators"
	"github.com/harpsglobal/harps-portal-backend/internal/catalog"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"github.com/harpsglobal/harps-portal-backend/pkg/logger"
)

// importMaxUploadBytes caps a product sheet upload at 10 MiB.
const importMaxUploadBytes = 10 << 20

type createProductPayload struct {
	SKU            string            `json:"sku" validate:"required"`
	Name           string            `json:"name" validate:"required"`
	Category       string            `json:"category" validate:"required"`
	BasePrice      int64             `json:"base_price" validate:"required,min=1"`
	ImageURL       *string           `json:"image_url,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Variants       []string          `json:"variants,omitempty"`
}

type updateProductPayload struct {
	Name           *string           `json:"name,omitempty"`
	Category       *string           `json:"category,omitempty"`
	BasePrice      *int64            `json:"base_price,omitempty" validate:"omitempty,min=1"`
	ImageURL       *string           `json:"image_url,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Variants       []string          `json:"variants,omitempty"`
}

// AdminProductCreate adds a catalog listing.
func AdminProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createProductPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.Create(ctx, catalog.CreateInput{
			SKU:            payload.SKU,
			Name:           payload.Name,
			Category:       payload.Category,
			BasePrice:      payload.BasePrice,
			ImageURL:       payload.ImageURL,
			Specifications: payload.Specifications,
			Variants:       payload.Variants,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminProductUpdate edits a catalog listing.
func AdminProductUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateProductPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.Update(ctx, productID, catalog.UpdateInput{
			Name:           payload.Name,
			Category:       payload.Category,
			BasePrice:      payload.BasePrice,
			ImageURL:       payload.ImageURL,
			Specifications: payload.Specifications,
			Variants:       payload.Variants,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminProductDelete removes a catalog listing.
func AdminProductDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminProductsImport ingests an xlsx product sheet. The response only
// carries counts; per-row failures go to the log.
func AdminProductsImport(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, importMaxUploadBytes)
		if err := r.ParseMultipartForm(importMaxUploadBytes); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart upload"))
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer file.Close()

		result, err := svc.Import(ctx, file)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if result.RowErrors != nil {
			logg.Warn(logg.WithField(ctx, "failed_rows", result.Failed), "product import rows rejected: "+result.RowErrors.Error())
		}

		responses.WriteSuccess(w, result)
	}
}

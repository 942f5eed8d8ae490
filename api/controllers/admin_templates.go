package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/harpsglobal/harps-portal-backend/api/responses"
	"github.com/harpsglobal/harps-portal-backend/api/validators"
	"github.com/harpsglobal/harps-portal-backend/internal/templates"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"github.com/harpsglobal/harps-portal-backend/pkg/logger"
)

type updateTemplatePayload struct {
	Subject  *string `json:"subject,omitempty"`
	Body     *string `json:"body,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// TemplatesList returns all email templates.
func TemplatesList(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "templates service unavailable"))
			return
		}

		list, err := svc.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"templates": list})
	}
}

// TemplateGet returns one template by slug.
func TemplateGet(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "templates service unavailable"))
			return
		}

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		template, err := svc.Get(ctx, slug)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, template)
	}
}

// TemplateUpdate edits a template's subject, body, or active flag.
func TemplateUpdate(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "templates service unavailable"))
			return
		}

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))

		var payload updateTemplatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		template, err := svc.Update(ctx, slug, templates.UpdateInput{
			Subject:  payload.Subject,
			Body:     payload.Body,
			IsActive: payload.IsActive,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, template)
	}
}

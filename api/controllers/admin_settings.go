package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/harpsglobal/harps-portal-backend/api/responses"
	"github.com/harpsglobal/harps-portal-backend/api/validators"
	"github.com/harpsglobal/harps-portal-backend/internal/settings"
	pkgerrors "github.com/harpsglobal/harps-portal-backend/pkg/errors"
	"github.com/harpsglobal/harps-portal-backend/pkg/logger"
)

type putSettingPayload struct {
	Value string `json:"value" validate:"required"`
}

// SettingGet returns one portal setting by key.
func SettingGet(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		key := strings.TrimSpace(chi.URLParam(r, "key"))
		value, err := svc.Get(ctx, key)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"key": key, "value": value})
	}
}

// SettingPut stores one portal setting by key.
func SettingPut(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		key := strings.TrimSpace(chi.URLParam(r, "key"))

		var payload putSettingPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Put(ctx, key, payload.Value); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"key": key, "value": payload.Value})
	}
}

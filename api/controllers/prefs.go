package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/gracebuffer/storefront/api/middleware"
	"github.com/gracebuffer/storefront/api/responses"
	"github.com/gracebuffer/storefront/api/validators"
	"github.com/gracebuffer/storefront/pkg/enums"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
	"github.com/gracebuffer/storefront/pkg/logger"
)

type themeStore interface {
	Theme(ctx context.Context, userID uuid.UUID) (enums.Theme, error)
	SetTheme(ctx context.Context, userID uuid.UUID, theme enums.Theme) error
}

// ThemePreference returns the shopper's saved theme, defaulting to light.
func ThemePreference(store themeStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		theme, err := store.Theme(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"theme": theme.String()})
	}
}

type setThemeRequest struct {
	Theme string `json:"theme" validate:"required"`
}

// SetThemePreference persists the shopper's theme choice.
func SetThemePreference(store themeStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload setThemeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		theme, err := enums.ParseTheme(payload.Theme)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid theme"))
			return
		}

		if err := store.SetTheme(r.Context(), middleware.UserIDFromContext(r.Context()), theme); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"theme": theme.String()})
	}
}

package controllers

import (
	"net/http"

	"github.com/gracebuffer/storefront/api/middleware"
	"github.com/gracebuffer/storefront/api/responses"
	"github.com/gracebuffer/storefront/api/validators"
	authsvc "github.com/gracebuffer/storefront/internal/auth"
	"github.com/gracebuffer/storefront/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionView struct {
	UserUUID string `json:"userUuid"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
}

// Login authenticates against the remote API and opens a local session.
func Login(auth authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := auth.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sessionView{
			UserUUID: record.UserUUID.String(),
			Email:    record.Email,
			Name:     record.Name,
		})
	}
}

// CurrentSession returns the logged-in shopper, or 401 when the cached
// session is missing or its token has expired.
func CurrentSession(auth authsvc.Service, logg *logger.Logger, loginPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := auth.CurrentUser(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteErrorWithLoginHint(r.Context(), logg, w, err, loginPath)
			return
		}
		responses.WriteSuccess(w, sessionView{
			UserUUID: record.UserUUID.String(),
			Email:    record.Email,
			Name:     record.Name,
		})
	}
}

// Logout evicts the cached session.
func Logout(auth authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := auth.Logout(r.Context(), middleware.UserIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"loggedOut": true})
	}
}

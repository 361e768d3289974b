package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/gracebuffer/storefront/api/responses"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
	"github.com/gracebuffer/storefront/pkg/logger"
)

const userIDHeader = "X-User-Id"

// UserContext reads the shopper id header into the request context. A
// missing or malformed header leaves the request anonymous; pages that
// need a login gate behind RequireUser.
func UserContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(userIDHeader)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := uuid.Parse(raw)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithUserID(r.Context(), userID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, userID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects anonymous requests with an unauthorized payload
// carrying the login page redirect.
func RequireUser(logg *logger.Logger, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserIDFromContext(r.Context()) == uuid.Nil {
				responses.WriteErrorWithLoginHint(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "login required"), loginPath)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

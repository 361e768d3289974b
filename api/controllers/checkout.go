package controllers

import (
	"net/http"

	"github.com/gracebuffer/storefront/api/middleware"
	"github.com/gracebuffer/storefront/api/responses"
	"github.com/gracebuffer/storefront/api/validators"
	cartsvc "github.com/gracebuffer/storefront/internal/cart"
	checkoutsvc "github.com/gracebuffer/storefront/internal/checkout"
	"github.com/gracebuffer/storefront/internal/session"
	"github.com/gracebuffer/storefront/pkg/format"
	"github.com/gracebuffer/storefront/pkg/logger"
)

type checkoutTotalsView struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

type checkoutResponse struct {
	Items  []cartLineView     `json:"items"`
	Totals checkoutTotalsView `json:"totals"`
	Badge  int                `json:"badge"`
}

func newTotalsView(totals checkoutsvc.Totals) checkoutTotalsView {
	return checkoutTotalsView{
		Subtotal: format.Price(totals.Subtotal),
		Tax:      format.Price(totals.Tax),
		Shipping: format.Price(totals.Shipping),
		Total:    format.Price(totals.Total),
	}
}

// Checkout renders the checkout page: the cart contents plus the priced
// breakdown shown next to the customer form.
func Checkout(checkouts checkoutsvc.Service, carts cartsvc.Service, logg *logger.Logger, loginPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		lines, err := carts.Items(r.Context(), userID)
		if err != nil {
			responses.WriteErrorWithLoginHint(r.Context(), logg, w, err, loginPath)
			return
		}
		totals, err := checkouts.Totals(r.Context(), userID)
		if err != nil {
			responses.WriteErrorWithLoginHint(r.Context(), logg, w, err, loginPath)
			return
		}

		views := make([]cartLineView, 0, len(lines))
		badge := 0
		for _, line := range lines {
			views = append(views, newCartLineView(line))
			badge += line.EffectiveQuantity()
		}

		responses.WriteSuccess(w, checkoutResponse{
			Items:  views,
			Totals: newTotalsView(*totals),
			Badge:  badge,
		})
	}
}

type proceedToPaymentRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ProceedToPayment accepts the customer form and hands the session over
// to the payment page.
func ProceedToPayment(checkouts checkoutsvc.Service, logg *logger.Logger, loginPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload proceedToPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		form := session.CustomerInfo{
			Name:    validators.SanitizeString(payload.Name, 200),
			Email:   payload.Email,
			Phone:   payload.Phone,
			Address: validators.SanitizeString(payload.Address, 500),
		}

		orderID, err := checkouts.ProceedToPayment(r.Context(), middleware.UserIDFromContext(r.Context()), form)
		if err != nil {
			responses.WriteErrorWithLoginHint(r.Context(), logg, w, err, loginPath)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"orderId": orderID,
			"next":    "/payment",
		})
	}
}

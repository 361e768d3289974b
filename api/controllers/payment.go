package controllers

import (
	"context"
	"net/http"

	"github.com/gracebuffer/storefront/api/middleware"
	"github.com/gracebuffer/storefront/api/responses"
	"github.com/gracebuffer/storefront/api/validators"
	"github.com/gracebuffer/storefront/internal/catalog"
	checkoutsvc "github.com/gracebuffer/storefront/internal/checkout"
	paymentsvc "github.com/gracebuffer/storefront/internal/payment"
	"github.com/gracebuffer/storefront/internal/session"
	"github.com/gracebuffer/storefront/pkg/enums"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
	"github.com/gracebuffer/storefront/pkg/format"
	"github.com/gracebuffer/storefront/pkg/logger"
)

type orderFetcher interface {
	GetOrder(ctx context.Context, orderID, userID string) (*catalog.Order, error)
}

type orderItemView struct {
	Name       string `json:"name"`
	Price      string `json:"price"`
	Qty        int    `json:"qty"`
	SugarLevel string `json:"sugarLevel,omitempty"`
}

type paymentPageResponse struct {
	OrderID  string                `json:"orderId"`
	Customer *session.CustomerInfo `json:"customer,omitempty"`
	Method   string                `json:"method,omitempty"`
	Items    []orderItemView       `json:"items,omitempty"`
	Totals   checkoutTotalsView    `json:"totals"`
	Methods  []string              `json:"methods"`
}

// PaymentPage renders the payment page from the checkout session: the
// order reference, the customer snapshot, the remote order lines, and the
// priced totals. The remote order fetch is display-only, so its failure
// degrades to an empty item list.
func PaymentPage(checkouts checkoutsvc.Service, remote orderFetcher, state *session.Store, logg *logger.Logger, loginPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		orderID, err := state.OrderID(r.Context(), userID.String())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if orderID == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeNotFound, "no order in progress; complete checkout first"))
			return
		}

		customer, err := state.CustomerInfo(r.Context(), userID.String())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		method, err := state.PaymentMethod(r.Context(), userID.String())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		totals, err := checkouts.Totals(r.Context(), userID)
		if err != nil {
			responses.WriteErrorWithLoginHint(r.Context(), logg, w, err, loginPath)
			return
		}

		resp := paymentPageResponse{
			OrderID:  orderID,
			Customer: customer,
			Totals:   newTotalsView(*totals),
			Methods:  []string{enums.PaymentMethodCash.String(), enums.PaymentMethodCard.String(), enums.PaymentMethodBakong.String()},
		}
		if order, err := remote.GetOrder(r.Context(), orderID, userID.String()); err != nil {
			if logg != nil {
				logg.Warn(r.Context(), "remote order unavailable for payment page")
			}
		} else {
			for _, item := range order.Items {
				resp.Items = append(resp.Items, orderItemView{
					Name:       item.Name,
					Price:      format.Price(item.Price),
					Qty:        item.Qty,
					SugarLevel: item.SugarLevel,
				})
			}
		}
		if method != "" {
			resp.Method = method.String()
		}
		responses.WriteSuccess(w, resp)
	}
}

type selectPaymentMethodRequest struct {
	Method string `json:"method" validate:"required"`
}

// SelectPaymentMethod records the shopper's chosen payment method.
func SelectPaymentMethod(payments paymentsvc.Service, logg *logger.Logger, loginPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload selectPaymentMethodRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.Method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		if err := payments.SelectMethod(r.Context(), middleware.UserIDFromContext(r.Context()), method); err != nil {
			responses.WriteErrorWithLoginHint(r.Context(), logg, w, err, loginPath)
			return
		}

		responses.WriteSuccess(w, map[string]any{"method": method.String()})
	}
}

// PaymentQR generates a Bakong KHQR payload for the pending order.
func PaymentQR(payments paymentsvc.Service, logg *logger.Logger, loginPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qr, err := payments.GenerateQR(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteErrorWithLoginHint(r.Context(), logg, w, err, loginPath)
			return
		}
		responses.WriteSuccess(w, qr)
	}
}

type receiptView struct {
	OrderID string `json:"orderId"`
	Method  string `json:"method"`
	Amount  string `json:"amount"`
}

// ConfirmPayment settles the pending order and empties the session.
func ConfirmPayment(payments paymentsvc.Service, logg *logger.Logger, loginPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		receipt, err := payments.Confirm(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteErrorWithLoginHint(r.Context(), logg, w, err, loginPath)
			return
		}
		responses.WriteSuccess(w, receiptView{
			OrderID: receipt.OrderID,
			Method:  receipt.Method.String(),
			Amount:  format.Price(receipt.Amount),
		})
	}
}

// CancelPayment backs out of the payment page without settling, leaving
// the checkout session intact for a retry.
func CancelPayment(payments paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := payments.Cancel(r.Context(), middleware.UserIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"cancelled": true})
	}
}

package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	checkoutsvc "github.com/gracebuffer/storefront/internal/checkout"
	"github.com/gracebuffer/storefront/internal/session"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
	"github.com/gracebuffer/storefront/pkg/types"
)

type stubCheckoutService struct {
	totals     checkoutsvc.Totals
	orderID    string
	proceedErr error
	lastForm   session.CustomerInfo
}

func (s *stubCheckoutService) Totals(context.Context, uuid.UUID) (*checkoutsvc.Totals, error) {
	return &s.totals, nil
}

func (s *stubCheckoutService) ProceedToPayment(_ context.Context, _ uuid.UUID, form session.CustomerInfo) (string, error) {
	if s.proceedErr != nil {
		return "", s.proceedErr
	}
	s.lastForm = form
	return s.orderID, nil
}

func TestCheckoutRendersTotals(t *testing.T) {
	checkouts := &stubCheckoutService{totals: checkoutsvc.Totals{
		Subtotal: decimal.RequireFromString("10.00"),
		Tax:      decimal.RequireFromString("1.00"),
		Shipping: decimal.RequireFromString("2.00"),
		Total:    decimal.RequireFromString("13.00"),
	}}

	w := httptest.NewRecorder()
	Checkout(checkouts, &stubCartService{}, nil, "/pages/login.html")(w, authedRequest("GET", "/checkout", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var envelope struct {
		Data checkoutResponse `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Totals.Total != "13.00" {
		t.Fatalf("expected total 13.00, got %s", envelope.Data.Totals.Total)
	}
}

func TestProceedToPaymentHandsOffOrder(t *testing.T) {
	checkouts := &stubCheckoutService{orderID: uuid.NewString()}

	body := `{"name":"Dara","email":"dara@example.com","phone":"012345678","address":"Phnom Penh"}`
	w := httptest.NewRecorder()
	ProceedToPayment(checkouts, nil, "/pages/login.html")(w, authedRequest("POST", "/checkout", body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if checkouts.lastForm.Name != "Dara" {
		t.Fatalf("expected form to reach the service, got %+v", checkouts.lastForm)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data["orderId"] != checkouts.orderID {
		t.Fatalf("expected order id %s, got %s", checkouts.orderID, envelope.Data["orderId"])
	}
}

func TestProceedToPaymentValidationPassthrough(t *testing.T) {
	checkouts := &stubCheckoutService{
		proceedErr: pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"phone": "must be 9 to 12 digits"}),
	}

	body := `{"name":"Dara","email":"dara@example.com","phone":"12","address":"Phnom Penh"}`
	w := httptest.NewRecorder()
	ProceedToPayment(checkouts, nil, "/pages/login.html")(w, authedRequest("POST", "/checkout", body))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	details, ok := envelope.Error.Details.(map[string]any)
	if !ok || details["phone"] == nil {
		t.Fatalf("expected field details, got %#v", envelope.Error.Details)
	}
}

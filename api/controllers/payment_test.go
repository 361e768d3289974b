package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/gracebuffer/storefront/internal/catalog"
	paymentsvc "github.com/gracebuffer/storefront/internal/payment"
	"github.com/gracebuffer/storefront/internal/session"
	"github.com/gracebuffer/storefront/pkg/config"
	"github.com/gracebuffer/storefront/pkg/enums"
)

type memoryKV struct {
	values map[string]string
}

func (m *memoryKV) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if m.values == nil {
		m.values = map[string]string{}
	}
	switch v := value.(type) {
	case string:
		m.values[key] = v
	case []byte:
		m.values[key] = string(v)
	}
	return nil
}

func (m *memoryKV) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *memoryKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memoryKV) CheckoutKey(userID, field string) string {
	return "checkout:" + userID + ":" + field
}

type stubPaymentService struct {
	receipt    *paymentsvc.Receipt
	confirmErr error
}

func (s *stubPaymentService) SelectMethod(context.Context, uuid.UUID, enums.PaymentMethod) error {
	return nil
}

func (s *stubPaymentService) GenerateQR(context.Context, uuid.UUID) (*catalog.QRCode, error) {
	return &catalog.QRCode{QRCode: "khqr-payload"}, nil
}

func (s *stubPaymentService) Confirm(context.Context, uuid.UUID) (*paymentsvc.Receipt, error) {
	return s.receipt, s.confirmErr
}

func (s *stubPaymentService) Cancel(context.Context, uuid.UUID) error {
	return nil
}

func TestPaymentPageRequiresCheckoutFirst(t *testing.T) {
	state, err := session.NewStore(&memoryKV{}, config.SessionConfig{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	w := httptest.NewRecorder()
	PaymentPage(&stubCheckoutService{}, &stubCatalog{}, state, nil, "/pages/login.html")(w, authedRequest("GET", "/payment", ""))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a pending order, got %d", w.Code)
	}
}

func TestConfirmPaymentReturnsReceipt(t *testing.T) {
	payments := &stubPaymentService{receipt: &paymentsvc.Receipt{
		OrderID: uuid.NewString(),
		Method:  enums.PaymentMethodBakong,
		Amount:  decimal.RequireFromString("13.00"),
	}}

	w := httptest.NewRecorder()
	ConfirmPayment(payments, nil, "/pages/login.html")(w, authedRequest("POST", "/payment/confirm", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var envelope struct {
		Data receiptView `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Amount != "13.00" || envelope.Data.Method != "bakong" {
		t.Fatalf("unexpected receipt %+v", envelope.Data)
	}
}

func TestSelectPaymentMethodRejectsUnknown(t *testing.T) {
	w := httptest.NewRecorder()
	SelectPaymentMethod(&stubPaymentService{}, nil, "/pages/login.html")(w, authedRequest("POST", "/payment/method", `{"method":"cheque"}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

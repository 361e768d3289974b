package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/gracebuffer/storefront/internal/catalog"
	"github.com/gracebuffer/storefront/internal/checkout"
	"github.com/gracebuffer/storefront/pkg/enums"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
	"github.com/gracebuffer/storefront/pkg/logger"
)

type remotePayment interface {
	CreatePayment(ctx context.Context, payment catalog.PaymentRequest) error
	GenerateQR(ctx context.Context, orderID string) (*catalog.QRCode, error)
}

type paymentState interface {
	SavePaymentMethod(ctx context.Context, userID string, method enums.PaymentMethod) error
	PaymentMethod(ctx context.Context, userID string) (enums.PaymentMethod, error)
	OrderID(ctx context.Context, userID string) (string, error)
	ClearAll(ctx context.Context, userID string) error
}

type cartClearer interface {
	Clear(ctx context.Context, userID uuid.UUID) error
}

type totalsReader interface {
	Totals(ctx context.Context, userID uuid.UUID) (*checkout.Totals, error)
}

// Receipt summarizes a settled payment.
type Receipt struct {
	OrderID string              `json:"orderId"`
	Method  enums.PaymentMethod `json:"method"`
	Amount  decimal.Decimal     `json:"amount"`
}

// Service drives the payment page: method selection, QR generation, and
// final confirmation.
type Service interface {
	SelectMethod(ctx context.Context, userID uuid.UUID, method enums.PaymentMethod) error
	GenerateQR(ctx context.Context, userID uuid.UUID) (*catalog.QRCode, error)
	Confirm(ctx context.Context, userID uuid.UUID) (*Receipt, error)
	Cancel(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	remote remotePayment
	state  paymentState
	cart   cartClearer
	totals totalsReader
	log    *logger.Logger
}

// NewService builds a payment service backed by the provided stack.
func NewService(remote remotePayment, state paymentState, cart cartClearer, totals totalsReader, log *logger.Logger) (Service, error) {
	if remote == nil {
		return nil, fmt.Errorf("remote payment client required")
	}
	if state == nil {
		return nil, fmt.Errorf("payment state store required")
	}
	if cart == nil {
		return nil, fmt.Errorf("cart clearer required")
	}
	if totals == nil {
		return nil, fmt.Errorf("totals reader required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{remote: remote, state: state, cart: cart, totals: totals, log: log}, nil
}

// SelectMethod persists the shopper's choice for the session.
func (s *service) SelectMethod(ctx context.Context, userID uuid.UUID, method enums.PaymentMethod) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}
	if !method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown payment method %q", method))
	}
	return s.state.SavePaymentMethod(ctx, userID.String(), method)
}

// GenerateQR produces a Bakong QR for the in-flight order. Only the
// bakong method has a QR.
func (s *service) GenerateQR(ctx context.Context, userID uuid.UUID) (*catalog.QRCode, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}

	method, err := s.state.PaymentMethod(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if method != enums.PaymentMethodBakong {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qr codes are only available for bakong payments")
	}

	orderID, err := s.state.OrderID(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no order in progress")
	}

	return s.remote.GenerateQR(ctx, orderID)
}

// Confirm settles the in-flight order remotely, then clears the local
// cart and checkout state. Cleanup is best-effort: a settled payment is
// never reported as failed because a local delete broke.
func (s *service) Confirm(ctx context.Context, userID uuid.UUID) (*Receipt, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}

	method, err := s.state.PaymentMethod(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if method == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "select a payment method first")
	}

	orderID, err := s.state.OrderID(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no order in progress")
	}

	totals, err := s.totals.Totals(ctx, userID)
	if err != nil {
		return nil, err
	}

	request := catalog.PaymentRequest{
		OrderUUID:     orderID,
		PaymentMethod: method.String(),
		Amount:        totals.Total,
		Status:        "paid",
	}
	if err := s.remote.CreatePayment(ctx, request); err != nil {
		return nil, err
	}

	cleanup := multierr.Combine(
		s.cart.Clear(ctx, userID),
		s.state.ClearAll(ctx, userID.String()),
	)
	if cleanup != nil {
		s.log.Error(s.log.WithUserID(ctx, userID.String()), "post-payment cleanup incomplete", cleanup)
	}

	return &Receipt{OrderID: orderID, Method: method, Amount: totals.Total}, nil
}

// Cancel backs out of the payment page without touching checkout state,
// so the shopper can return and finish later.
func (s *service) Cancel(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}
	s.log.Info(s.log.WithUserID(ctx, userID.String()), "payment cancelled, checkout state retained")
	return nil
}

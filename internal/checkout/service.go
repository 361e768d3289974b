package checkout

import (
	"context"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gracebuffer/storefront/internal/catalog"
	"github.com/gracebuffer/storefront/internal/session"
	"github.com/gracebuffer/storefront/pkg/config"
	"github.com/gracebuffer/storefront/pkg/db/models"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
	"github.com/gracebuffer/storefront/pkg/logger"
)

var phonePattern = regexp.MustCompile(`^\d{9,12}$`)

func newFormValidator() *validator.Validate {
	v := validator.New()
	// Local mobile numbers: digits only, 9 to 12 of them.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

type cartReader interface {
	Items(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
}

type remoteCheckout interface {
	Checkout(ctx context.Context, userID string) (*catalog.Order, error)
}

type checkoutState interface {
	SaveCustomerInfo(ctx context.Context, userID string, info session.CustomerInfo) error
	SaveOrderID(ctx context.Context, userID, orderID string) error
}

// Totals is the priced breakdown shown on the checkout page.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Service prices the cart and drives the checkout handoff to payment.
type Service interface {
	Totals(ctx context.Context, userID uuid.UUID) (*Totals, error)
	ProceedToPayment(ctx context.Context, userID uuid.UUID, form session.CustomerInfo) (string, error)
}

type service struct {
	cart     cartReader
	remote   remoteCheckout
	state    checkoutState
	taxRate  decimal.Decimal
	shipping decimal.Decimal
	validate *validator.Validate
	log      *logger.Logger
}

// NewService builds a checkout service with the configured rates.
func NewService(cart cartReader, remote remoteCheckout, state checkoutState, cfg config.CheckoutConfig, log *logger.Logger) (Service, error) {
	if cart == nil {
		return nil, fmt.Errorf("cart reader required")
	}
	if remote == nil {
		return nil, fmt.Errorf("remote checkout client required")
	}
	if state == nil {
		return nil, fmt.Errorf("checkout state store required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		cart:     cart,
		remote:   remote,
		state:    state,
		taxRate:  cfg.TaxRate(),
		shipping: cfg.ShippingFlat(),
		validate: newFormValidator(),
		log:      log,
	}, nil
}

// Totals prices the current cart: subtotal, tax at the configured rate,
// flat shipping, and the sum. An empty cart ships for free.
func (s *service) Totals(ctx context.Context, userID uuid.UUID) (*Totals, error) {
	lines, err := s.cart.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.EffectiveQuantity()))))
	}

	shipping := s.shipping
	if len(lines) == 0 {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(s.taxRate)

	return &Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}, nil
}

// ProceedToPayment validates the form, snapshots it for the session,
// converts the remote cart into an order, and records the order reference.
func (s *service) ProceedToPayment(ctx context.Context, userID uuid.UUID, form session.CustomerInfo) (string, error) {
	if userID == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "login required to check out")
	}
	if err := s.validate.Struct(form); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			details := map[string]string{}
			for _, fe := range fieldErrs {
				details[fe.Field()] = fe.Tag()
			}
			return "", pkgerrors.New(pkgerrors.CodeValidation, "checkout form incomplete").WithDetails(details)
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "checkout form invalid")
	}

	lines, err := s.cart.Items(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	if err := s.state.SaveCustomerInfo(ctx, userID.String(), form); err != nil {
		return "", err
	}

	order, err := s.remote.Checkout(ctx, userID.String())
	if err != nil {
		return "", err
	}
	if order == nil || order.UUID == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "remote checkout returned no order")
	}

	if err := s.state.SaveOrderID(ctx, userID.String(), order.UUID); err != nil {
		return "", err
	}

	s.log.Info(s.log.WithUserID(ctx, userID.String()), "checkout handed off to payment")
	return order.UUID, nil
}

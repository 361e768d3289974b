package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gracebuffer/storefront/pkg/config"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
	"github.com/gracebuffer/storefront/pkg/enums"
)

// Checkout state field names. One shopper's in-flight checkout lives in
// these three keys and nothing else; ClearAll must stay in sync.
const (
	fieldCustomerInfo  = "customer_info"
	fieldOrderID       = "order_id"
	fieldPaymentMethod = "payment_method"
)

type keyValue interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CheckoutKey(userID, field string) string
}

// CustomerInfo is the checkout form snapshot held for the session.
type CustomerInfo struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,phone"`
	Address string `json:"address" validate:"required"`
}

// Store keeps per-shopper checkout state in Redis with a session TTL, the
// storefront's stand-in for tab-scoped storage.
type Store struct {
	kv  keyValue
	ttl time.Duration
}

// NewStore builds a session store with the configured checkout TTL.
func NewStore(kv keyValue, cfg config.SessionConfig) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("key-value client required")
	}
	ttl := time.Duration(cfg.CheckoutTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{kv: kv, ttl: ttl}, nil
}

// SaveCustomerInfo stores the checkout form for the session.
func (s *Store) SaveCustomerInfo(ctx context.Context, userID string, info CustomerInfo) error {
	payload, err := json.Marshal(info)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode customer info")
	}
	if err := s.kv.Set(ctx, s.kv.CheckoutKey(userID, fieldCustomerInfo), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store customer info")
	}
	return nil
}

// CustomerInfo returns the stored form, or nil when the session has none.
func (s *Store) CustomerInfo(ctx context.Context, userID string) (*CustomerInfo, error) {
	raw, err := s.kv.Get(ctx, s.kv.CheckoutKey(userID, fieldCustomerInfo))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read customer info")
	}
	var info CustomerInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode customer info")
	}
	return &info, nil
}

// SaveOrderID stores the in-flight order reference.
func (s *Store) SaveOrderID(ctx context.Context, userID, orderID string) error {
	if err := s.kv.Set(ctx, s.kv.CheckoutKey(userID, fieldOrderID), orderID, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store order id")
	}
	return nil
}

// OrderID returns the in-flight order reference, or empty when none.
func (s *Store) OrderID(ctx context.Context, userID string) (string, error) {
	raw, err := s.kv.Get(ctx, s.kv.CheckoutKey(userID, fieldOrderID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read order id")
	}
	return raw, nil
}

// SavePaymentMethod stores the selected payment method.
func (s *Store) SavePaymentMethod(ctx context.Context, userID string, method enums.PaymentMethod) error {
	if err := s.kv.Set(ctx, s.kv.CheckoutKey(userID, fieldPaymentMethod), method.String(), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store payment method")
	}
	return nil
}

// PaymentMethod returns the selected method, or empty when none is set.
func (s *Store) PaymentMethod(ctx context.Context, userID string) (enums.PaymentMethod, error) {
	raw, err := s.kv.Get(ctx, s.kv.CheckoutKey(userID, fieldPaymentMethod))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read payment method")
	}
	method, err := enums.ParsePaymentMethod(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stored payment method invalid")
	}
	return method, nil
}

// ClearAll drops the session's entire checkout state.
func (s *Store) ClearAll(ctx context.Context, userID string) error {
	keys := []string{
		s.kv.CheckoutKey(userID, fieldCustomerInfo),
		s.kv.CheckoutKey(userID, fieldOrderID),
		s.kv.CheckoutKey(userID, fieldPaymentMethod),
	}
	if err := s.kv.Del(ctx, keys...); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear checkout state")
	}
	return nil
}

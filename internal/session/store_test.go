package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gracebuffer/storefront/pkg/config"
	"github.com/gracebuffer/storefront/pkg/enums"
)

type memoryKV struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryKV) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	switch v := value.(type) {
	case string:
		m.values[key] = v
	case []byte:
		m.values[key] = string(v)
	default:
		return nil
	}
	m.ttls[key] = ttl
	return nil
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, error) {
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (m *memoryKV) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memoryKV) CheckoutKey(userID, field string) string {
	return "gb:checkout:" + userID + ":" + field
}

func newTestStore(t *testing.T, kv *memoryKV) *Store {
	t.Helper()
	store, err := NewStore(kv, config.SessionConfig{CheckoutTTLMinutes: 60})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestCustomerInfoRoundTrip(t *testing.T) {
	kv := newMemoryKV()
	store := newTestStore(t, kv)
	ctx := context.Background()

	info := CustomerInfo{
		Name:    "Chenda",
		Email:   "chenda@example.com",
		Phone:   "012345678",
		Address: "Phnom Penh",
	}
	if err := store.SaveCustomerInfo(ctx, "u-1", info); err != nil {
		t.Fatalf("SaveCustomerInfo: %v", err)
	}

	got, err := store.CustomerInfo(ctx, "u-1")
	if err != nil {
		t.Fatalf("CustomerInfo: %v", err)
	}
	if got == nil || *got != info {
		t.Fatalf("expected %+v, got %+v", info, got)
	}
}

func TestCustomerInfoMissingIsNil(t *testing.T) {
	store := newTestStore(t, newMemoryKV())

	got, err := store.CustomerInfo(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("CustomerInfo: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing info, got %+v", got)
	}
}

func TestSessionKeysCarryTTL(t *testing.T) {
	kv := newMemoryKV()
	store := newTestStore(t, kv)

	if err := store.SaveOrderID(context.Background(), "u-1", "o-1"); err != nil {
		t.Fatalf("SaveOrderID: %v", err)
	}
	key := kv.CheckoutKey("u-1", "order_id")
	if kv.ttls[key] != time.Hour {
		t.Errorf("expected 1h ttl, got %s", kv.ttls[key])
	}
}

func TestPaymentMethodRoundTrip(t *testing.T) {
	store := newTestStore(t, newMemoryKV())
	ctx := context.Background()

	method, err := store.PaymentMethod(ctx, "u-1")
	if err != nil {
		t.Fatalf("PaymentMethod: %v", err)
	}
	if method != "" {
		t.Fatalf("expected empty method, got %s", method)
	}

	if err := store.SavePaymentMethod(ctx, "u-1", enums.PaymentMethodBakong); err != nil {
		t.Fatalf("SavePaymentMethod: %v", err)
	}

	method, err = store.PaymentMethod(ctx, "u-1")
	if err != nil {
		t.Fatalf("PaymentMethod: %v", err)
	}
	if method != enums.PaymentMethodBakong {
		t.Errorf("expected bakong, got %s", method)
	}
}

func TestClearAllDropsEveryField(t *testing.T) {
	kv := newMemoryKV()
	store := newTestStore(t, kv)
	ctx := context.Background()

	if err := store.SaveCustomerInfo(ctx, "u-1", CustomerInfo{Name: "Chenda", Email: "c@example.com", Phone: "012345678", Address: "PP"}); err != nil {
		t.Fatalf("SaveCustomerInfo: %v", err)
	}
	if err := store.SaveOrderID(ctx, "u-1", "o-1"); err != nil {
		t.Fatalf("SaveOrderID: %v", err)
	}
	if err := store.SavePaymentMethod(ctx, "u-1", enums.PaymentMethodCash); err != nil {
		t.Fatalf("SavePaymentMethod: %v", err)
	}

	if err := store.ClearAll(ctx, "u-1"); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if len(kv.values) != 0 {
		t.Fatalf("expected all keys cleared, %d remain", len(kv.values))
	}
}

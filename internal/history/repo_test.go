package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gracebuffer/storefront/pkg/db/models"
	"github.com/gracebuffer/storefront/pkg/enums"
	"github.com/gracebuffer/storefront/pkg/pagination"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.OrderRecord{}))
	return NewRepository(conn)
}

func TestRecordAssignsID(t *testing.T) {
	repo := newTestRepo(t)

	record := &models.OrderRecord{
		UserUUID:    uuid.New(),
		ProductUUID: uuid.New(),
		ProductName: "Iced Latte",
		Kind:        enums.ProductKindDrink,
		Quantity:    1,
		Total:       decimal.RequireFromString("3.50"),
	}
	if err := repo.Record(context.Background(), record); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if record.ID == uuid.Nil {
		t.Fatal("expected assigned id")
	}
}

func TestListForUserNewestFirstPaged(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		record := &models.OrderRecord{
			ID:          uuid.New(),
			UserUUID:    userID,
			ProductUUID: uuid.New(),
			ProductName: "Scone",
			Kind:        enums.ProductKindPastry,
			Quantity:    i + 1,
			Total:       decimal.RequireFromString("2.00"),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Record(ctx, record); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	page, err := repo.ListForUser(ctx, userID, pagination.Params{Page: 1, Size: 2})
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 records, got %d", len(page))
	}
	if page[0].Quantity != 5 || page[1].Quantity != 4 {
		t.Errorf("expected newest first (5,4), got (%d,%d)", page[0].Quantity, page[1].Quantity)
	}

	second, err := repo.ListForUser(ctx, userID, pagination.Params{Page: 2, Size: 2})
	if err != nil {
		t.Fatalf("ListForUser page 2: %v", err)
	}
	if len(second) != 2 || second[0].Quantity != 3 {
		t.Fatalf("expected page 2 to start at 3, got %+v", second)
	}

	count, err := repo.CountForUser(ctx, userID)
	if err != nil {
		t.Fatalf("CountForUser: %v", err)
	}
	if count != 5 {
		t.Errorf("expected 5 orders, got %d", count)
	}
}

func TestListForUserScopedToOwner(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	other := &models.OrderRecord{
		UserUUID:    uuid.New(),
		ProductUUID: uuid.New(),
		ProductName: "Latte",
		Kind:        enums.ProductKindDrink,
		Quantity:    1,
		Total:       decimal.RequireFromString("3.50"),
	}
	if err := repo.Record(ctx, other); err != nil {
		t.Fatalf("Record: %v", err)
	}

	records, err := repo.ListForUser(ctx, userID, pagination.Params{})
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records for other shopper, got %d", len(records))
	}
}

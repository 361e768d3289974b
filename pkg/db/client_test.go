package db

import (
	"context"
	"errors"
	"testing"

	"github.com/gracebuffer/storefront/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testModel struct {
	ID   int
	Name string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	db := newTestDB(t)
	client := &Client{conn: db}

	ctx := context.Background()
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	boom := errors.New("boom")
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled-back"}).Error; err != nil {
			return err
		}
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected rollback error, got %v", err)
	}

	var count int64
	if err := db.Model(&testModel{}).Where("name = ?", "rolled-back").Count(&count).Error; err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to drop row, found %d", count)
	}
}

func TestDialectorFor(t *testing.T) {
	t.Parallel()

	if _, err := dialectorFor(config.StoreConfig{Driver: "sqlite", DSN: "file::memory:"}); err != nil {
		t.Fatalf("sqlite driver should be supported: %v", err)
	}
	if _, err := dialectorFor(config.StoreConfig{Driver: "postgres", DSN: "postgres://localhost/x"}); err != nil {
		t.Fatalf("postgres driver should be supported: %v", err)
	}
	if _, err := dialectorFor(config.StoreConfig{Driver: "oracle", DSN: "x"}); err == nil {
		t.Fatal("unknown driver should be rejected")
	}
}

package prefs

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gracebuffer/storefront/pkg/db/models"
	"github.com/gracebuffer/storefront/pkg/enums"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Preference{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(conn)
}

func TestThemeDefaultsToLight(t *testing.T) {
	repo := newTestRepo(t)

	theme, err := repo.Theme(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme != enums.ThemeLight {
		t.Errorf("expected light, got %s", theme)
	}
}

func TestSetThemeUpserts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	if err := repo.SetTheme(ctx, userID, enums.ThemeDark); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if err := repo.SetTheme(ctx, userID, enums.ThemeLight); err != nil {
		t.Fatalf("SetTheme (update): %v", err)
	}

	theme, err := repo.Theme(ctx, userID)
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme != enums.ThemeLight {
		t.Errorf("expected light after update, got %s", theme)
	}
}

func TestSetThemeRejectsUnknownValue(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.SetTheme(context.Background(), uuid.New(), enums.Theme("sepia")); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

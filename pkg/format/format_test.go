package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPriceRendersTwoDecimals(t *testing.T) {
	t.Parallel()

	if got := Price(decimal.NewFromFloat(13)); got != "$13.00" {
		t.Fatalf("expected $13.00, got %q", got)
	}
	if got := Price(decimal.RequireFromString("4.5")); got != "$4.50" {
		t.Fatalf("expected $4.50, got %q", got)
	}
}

func TestDateLayouts(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, time.March, 9, 14, 30, 0, 0, time.UTC)
	if got := Date(ts); got != "March 9, 2025" {
		t.Fatalf("unexpected date %q", got)
	}
	if got := DateTime(ts); got != "March 9, 2025 2:30 PM" {
		t.Fatalf("unexpected datetime %q", got)
	}
	if got := RelativeDate(time.Time{}); got != "Recently" {
		t.Fatalf("zero time should degrade, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := Truncate("espresso", 20); got != "espresso" {
		t.Fatalf("short text should pass through, got %q", got)
	}
	if got := Truncate("triple chocolate croissant", 6); got != "triple..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := Truncate("anything", 0); got != "" {
		t.Fatalf("non-positive max should return empty, got %q", got)
	}
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	if got := Capitalize("latte"); got != "Latte" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Capitalize(""); got != "" {
		t.Fatalf("empty should stay empty, got %q", got)
	}
}

func TestSugarLevelLabel(t *testing.T) {
	t.Parallel()

	if got := SugarLevelLabel("less-sweet"); got != "Less Sweet" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := SugarLevelLabel("75%"); got != "75%" {
		t.Fatalf("unknown value should pass through, got %q", got)
	}
}

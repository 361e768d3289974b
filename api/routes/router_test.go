package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gracebuffer/storefront/pkg/config"
	"github.com/gracebuffer/storefront/pkg/types"
)

func testDeps() Deps {
	return Deps{
		Config: &config.Config{
			App:  config.AppConfig{Env: "test", Port: "8080"},
			Auth: config.AuthConfig{LoginPath: "/pages/login.html"},
		},
	}
}

func TestHealthLive(t *testing.T) {
	router := NewRouter(testDeps())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health/live", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestGatedRoutesRejectAnonymous(t *testing.T) {
	router := NewRouter(testDeps())

	for _, target := range []string{"/api/v1/cart", "/api/v1/checkout", "/api/v1/orders/history"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", target, nil))

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", target, w.Code)
		}
		var envelope types.ErrorEnvelope
		if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
			t.Fatalf("%s: decode: %v", target, err)
		}
		details, ok := envelope.Error.Details.(map[string]any)
		if !ok || details["redirect"] != "/pages/login.html" {
			t.Fatalf("%s: expected login redirect, got %#v", target, envelope.Error.Details)
		}
	}
}

func TestMetricsEndpointMounted(t *testing.T) {
	router := NewRouter(testDeps())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

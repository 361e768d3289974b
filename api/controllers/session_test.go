package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/gracebuffer/storefront/pkg/db/models"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
	"github.com/gracebuffer/storefront/pkg/types"
)

type stubAuthService struct {
	record    *models.UserRecord
	loginErr  error
	currErr   error
	loggedOut bool
}

func (s *stubAuthService) Login(context.Context, string, string) (*models.UserRecord, error) {
	return s.record, s.loginErr
}

func (s *stubAuthService) CurrentUser(context.Context, uuid.UUID) (*models.UserRecord, error) {
	if s.currErr != nil {
		return nil, s.currErr
	}
	return s.record, nil
}

func (s *stubAuthService) Logout(context.Context, uuid.UUID) error {
	s.loggedOut = true
	return nil
}

func TestLoginReturnsSession(t *testing.T) {
	auth := &stubAuthService{record: &models.UserRecord{
		UserUUID: uuid.New(),
		Email:    "dara@example.com",
		Name:     "Dara",
	}}

	body := `{"email":"dara@example.com","password":"secret"}`
	w := httptest.NewRecorder()
	Login(auth, nil)(w, authedRequest("POST", "/auth/login", body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var envelope struct {
		Data sessionView `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Email != "dara@example.com" {
		t.Fatalf("expected session view, got %+v", envelope.Data)
	}
}

func TestLoginRejectsMalformedEmail(t *testing.T) {
	auth := &stubAuthService{}

	body := `{"email":"not-an-email","password":"secret"}`
	w := httptest.NewRecorder()
	Login(auth, nil)(w, authedRequest("POST", "/auth/login", body))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCurrentSessionExpiredRedirects(t *testing.T) {
	auth := &stubAuthService{currErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")}

	w := httptest.NewRecorder()
	CurrentSession(auth, nil, "/pages/login.html")(w, authedRequest("GET", "/auth/me", ""))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Error.Message != "session expired" {
		t.Fatalf("expected expiry message, got %q", envelope.Error.Message)
	}
	details, ok := envelope.Error.Details.(map[string]any)
	if !ok || details["redirect"] != "/pages/login.html" {
		t.Fatalf("expected login redirect, got %#v", envelope.Error.Details)
	}
}

func TestLogoutEvictsSession(t *testing.T) {
	auth := &stubAuthService{}

	w := httptest.NewRecorder()
	Logout(auth, nil)(w, authedRequest("POST", "/auth/logout", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !auth.loggedOut {
		t.Fatal("expected logout to reach the service")
	}
}

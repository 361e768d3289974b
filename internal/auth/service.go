package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gracebuffer/storefront/internal/catalog"
	pkgauth "github.com/gracebuffer/storefront/pkg/auth"
	"github.com/gracebuffer/storefront/pkg/config"
	"github.com/gracebuffer/storefront/pkg/db/models"
	pkgerrors "github.com/gracebuffer/storefront/pkg/errors"
	"github.com/gracebuffer/storefront/pkg/logger"
)

type remoteAuth interface {
	Login(ctx context.Context, email, password string) (*catalog.LoginResult, error)
}

type userStore interface {
	Save(ctx context.Context, record *models.UserRecord) error
	Get(ctx context.Context, userID uuid.UUID) (*models.UserRecord, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// Service authenticates shoppers against the remote API and serves the
// local session cache.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.UserRecord, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*models.UserRecord, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	users  userStore
	remote remoteAuth
	leeway time.Duration
	log    *logger.Logger
	now    func() time.Time
}

// NewService builds an auth service backed by the provided stack.
func NewService(users userStore, remote remoteAuth, cfg config.AuthConfig, log *logger.Logger) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user store required")
	}
	if remote == nil {
		return nil, fmt.Errorf("remote auth client required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		users:  users,
		remote: remote,
		leeway: cfg.TokenLeeway,
		log:    log,
		now:    time.Now,
	}, nil
}

// Login authenticates remotely and caches the returned user durably.
func (s *service) Login(ctx context.Context, email, password string) (*models.UserRecord, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	result, err := s.remote.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(result.UUID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remote login returned malformed user id")
	}
	if result.AccessToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "remote login returned no access token")
	}

	record := &models.UserRecord{
		UserUUID:    userID,
		Email:       result.Email,
		Name:        result.Name,
		AccessToken: result.AccessToken,
	}
	if record.Email == "" {
		record.Email = email
	}
	if err := s.users.Save(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cache user record")
	}

	s.log.Info(s.log.WithUserID(ctx, userID.String()), "shopper logged in")
	return record, nil
}

// CurrentUser returns the cached shopper, rejecting missing or expired
// sessions. An expired token evicts the cache so the next check fails
// fast.
func (s *service) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.UserRecord, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}

	record, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read user cache")
	}
	if record == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}

	claims, err := pkgauth.DecodeToken(record.AccessToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "stored token unreadable")
	}
	if claims.Expired(s.now(), s.leeway) {
		if err := s.users.Delete(ctx, userID); err != nil {
			s.log.Error(ctx, "evicting expired session failed", err)
		}
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}

	return record, nil
}

// Logout drops the cached session.
func (s *service) Logout(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return nil
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "drop user cache")
	}
	return nil
}

package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the subset of the remote API's access token the
// storefront inspects. The remote API holds the signing secret, so the
// token is decoded without signature verification; only temporal claims
// are checked locally.
type TokenClaims struct {
	UserUUID string `json:"user_uuid,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// DecodeToken extracts the claims from an access token string.
func DecodeToken(tokenString string) (*TokenClaims, error) {
	trimmed := strings.TrimSpace(tokenString)
	if trimmed == "" {
		return nil, fmt.Errorf("token is required")
	}

	claims := &TokenClaims{}
	if _, _, err := parser.ParseUnverified(trimmed, claims); err != nil {
		return nil, fmt.Errorf("decoding token: %w", err)
	}
	return claims, nil
}

// Expired reports whether the claims are past their expiry, allowing the
// provided leeway for clock skew. Tokens without an exp claim never expire
// from the storefront's point of view.
func (c *TokenClaims) Expired(now time.Time, leeway time.Duration) bool {
	if c == nil || c.ExpiresAt == nil {
		return false
	}
	return now.After(c.ExpiresAt.Time.Add(leeway))
}

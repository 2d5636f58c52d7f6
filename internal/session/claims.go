package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of the backend's JWT payload the client displays.
// The client holds no signing key, so the claims are decoded without
// verification and used for display only, never for authorization.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// ParseClaims decodes the bearer token's claims without verifying the
// signature.
func ParseClaims(token string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("decoding token: %w", err)
	}

	claims := &Claims{}
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// Expired reports whether the token's exp claim has passed. Tokens
// without an exp claim never report expired.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

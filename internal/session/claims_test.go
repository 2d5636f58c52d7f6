package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{
		"sub": "user@example.com",
		"exp": exp.Unix(),
	})

	claims, err := ParseClaims(token)
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if claims.Subject != "user@example.com" {
		t.Errorf("subject = %q", claims.Subject)
	}
	if !claims.ExpiresAt.Equal(exp) {
		t.Errorf("expiry = %v, want %v", claims.ExpiresAt, exp)
	}
	if claims.Expired(time.Now()) {
		t.Error("token should not report expired before exp")
	}
	if !claims.Expired(exp.Add(time.Second)) {
		t.Error("token should report expired after exp")
	}
}

func TestParseClaimsExpiredTokenStillDecodes(t *testing.T) {
	// Display of an expired session must still work; validation is the
	// backend's job.
	token := signedToken(t, jwt.MapClaims{
		"sub": "user@example.com",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	claims, err := ParseClaims(token)
	if err != nil {
		t.Fatalf("expired tokens must still decode: %v", err)
	}
	if !claims.Expired(time.Now()) {
		t.Error("expected expired")
	}
}

func TestParseClaimsWithoutExpiry(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "user@example.com"})

	claims, err := ParseClaims(token)
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if claims.Expired(time.Now()) {
		t.Error("tokens without exp never report expired")
	}
}

func TestParseClaimsRejectsGarbage(t *testing.T) {
	if _, err := ParseClaims("not-a-jwt"); err == nil {
		t.Error("expected an error for malformed input")
	}
}

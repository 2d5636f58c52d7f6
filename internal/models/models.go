// Package models defines the data structures exchanged with the back-office backend.
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// KYC statuses
const (
	KYCPending  = "pending"
	KYCApproved = "approved"
	KYCRejected = "rejected"
)

// Timestamp wraps time.Time to accept the backend's timestamp encodings.
// The backend emits naive ISO timestamps without a zone offset alongside
// regular RFC3339 values.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// UnmarshalJSON parses a backend timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// MarshalJSON encodes the timestamp as RFC3339.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// Profile is the authenticated user's profile as returned by the backend.
type Profile struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone,omitempty"`
	Country     string           `json:"country,omitempty"`
	City        string           `json:"city,omitempty"`
	Address     string           `json:"address,omitempty"`
	Balance     float64          `json:"balance"`
	Role        string           `json:"role"`
	KYCStatus   string           `json:"kyc_status"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   Timestamp        `json:"created_at"`
	MT5Accounts []MT5AccountLink `json:"mt5_accounts"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// MT5AccountLink is an MT5 terminal account attached to a user profile.
type MT5AccountLink struct {
	Login    int    `json:"login"`
	Server   string `json:"server,omitempty"`
	Group    string `json:"group,omitempty"`
	Leverage int    `json:"leverage,omitempty"`
}

// ProfileUpdate is the mutable subset of a profile.
type ProfileUpdate struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
	Address string `json:"address,omitempty"`
}

// LoginRequest is the credential payload for /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the registration payload for /api/auth/register.
type SignupRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Phone        string `json:"phone,omitempty"`
	Country      string `json:"country,omitempty"`
	City         string `json:"city,omitempty"`
	Address      string `json:"address,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
	ReferralCode string `json:"referral_code,omitempty"`
}

// AuthResponse is the body returned by login and register.
type AuthResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        Profile `json:"user"`
}

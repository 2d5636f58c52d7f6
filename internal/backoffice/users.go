package backoffice

import (
	"context"
	"fmt"

	"mt5-backoffice/internal/models"
)

// Profile fetches the caller's own profile.
func (s *Service) Profile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := s.client.Get(ctx, "/api/user/profile", &profile); err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile applies a partial profile update and returns the fresh profile.
func (s *Service) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error) {
	var profile models.Profile
	if err := s.client.Put(ctx, "/api/user/profile", update, &profile); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	s.logger.Info().Msg("Profile updated")
	return &profile, nil
}

// balanceResponse is the body of /api/user/balance.
type balanceResponse struct {
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// Balance fetches the wallet balance held by the backend.
func (s *Service) Balance(ctx context.Context) (float64, string, error) {
	var resp balanceResponse
	if err := s.client.Get(ctx, "/api/user/balance", &resp); err != nil {
		return 0, "", fmt.Errorf("fetching balance: %w", err)
	}
	if resp.Currency == "" {
		resp.Currency = "USD"
	}
	return resp.Balance, resp.Currency, nil
}

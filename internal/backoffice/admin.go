package backoffice

import (
	"context"
	"fmt"

	"mt5-backoffice/internal/models"
)

// Dashboard fetches the admin overview counters. Admin only.
func (s *Service) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := s.client.Get(ctx, "/api/admin/dashboard", &stats); err != nil {
		return nil, fmt.Errorf("fetching dashboard: %w", err)
	}
	return &stats, nil
}

// Users lists every registered user. Admin only.
func (s *Service) Users(ctx context.Context) ([]models.Profile, error) {
	var users []models.Profile
	if err := s.client.Get(ctx, "/api/admin/users", &users); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// User fetches one user's full profile by id. Admin only.
func (s *Service) User(ctx context.Context, id string) (*models.Profile, error) {
	var user models.Profile
	if err := s.client.Get(ctx, "/api/admin/users/"+id, &user); err != nil {
		return nil, fmt.Errorf("fetching user %s: %w", id, err)
	}
	return &user, nil
}

// UpdateUserKYC sets a user's KYC status. Admin only.
func (s *Service) UpdateUserKYC(ctx context.Context, id string, update models.KYCUpdate) error {
	if err := s.checkPayload(update); err != nil {
		return err
	}
	var ack statusMessage
	if err := s.client.Put(ctx, "/api/admin/users/"+id+"/kyc", update, &ack); err != nil {
		return fmt.Errorf("updating KYC for user %s: %w", id, err)
	}
	s.logger.Info().
		Str("user_id", id).
		Str("kyc_status", update.Status).
		Msg("KYC status updated")
	return nil
}

// ToggleUserActive flips a user's activation flag. The backend decides
// the new state; the returned message says which way it went. Admin only.
func (s *Service) ToggleUserActive(ctx context.Context, id string) (string, error) {
	var ack statusMessage
	if err := s.client.Put(ctx, "/api/admin/users/"+id+"/activate", nil, &ack); err != nil {
		return "", fmt.Errorf("toggling user %s: %w", id, err)
	}
	s.logger.Info().Str("user_id", id).Str("result", ack.Message).Msg("User activation toggled")
	return ack.Message, nil
}

// SetUserBalance replaces a user's ledger balance. Admin only.
func (s *Service) SetUserBalance(ctx context.Context, id string, set models.BalanceSet) error {
	if err := s.checkPayload(set); err != nil {
		return err
	}
	var ack statusMessage
	if err := s.client.Put(ctx, "/api/admin/users/"+id+"/balance", set, &ack); err != nil {
		return fmt.Errorf("setting balance for user %s: %w", id, err)
	}
	s.logger.Info().
		Str("user_id", id).
		Float64("balance", set.Balance).
		Msg("User balance set")
	return nil
}

// AllPayments lists every payment across all users, newest first. Admin only.
func (s *Service) AllPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.client.Get(ctx, "/api/admin/payments/history", &payments); err != nil {
		return nil, fmt.Errorf("listing all payments: %w", err)
	}
	return payments, nil
}

// SetPaymentStatus overrides a payment's settlement status. Admin only.
func (s *Service) SetPaymentStatus(ctx context.Context, id string, update models.PaymentStatusUpdate) error {
	if err := s.checkPayload(update); err != nil {
		return err
	}
	var ack statusMessage
	if err := s.client.Put(ctx, "/api/admin/payments/"+id+"/status", update, &ack); err != nil {
		return fmt.Errorf("updating payment %s: %w", id, err)
	}
	s.logger.Info().
		Str("payment_id", id).
		Str("status", update.Status).
		Msg("Payment status updated")
	return nil
}

// MonthlyAnalytics fetches the trailing-year signup and volume buckets. Admin only.
func (s *Service) MonthlyAnalytics(ctx context.Context) (*models.MonthlyAnalytics, error) {
	var analytics models.MonthlyAnalytics
	if err := s.client.Get(ctx, "/api/admin/analytics/monthly", &analytics); err != nil {
		return nil, fmt.Errorf("fetching monthly analytics: %w", err)
	}
	return &analytics, nil
}

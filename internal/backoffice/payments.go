package backoffice

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "mt5-backoffice/internal/errors"
	"mt5-backoffice/internal/models"
)

// Deposit creates a deposit through one of the payment rails. The payload
// is validated locally first; the backend remains authoritative for
// settlement.
func (s *Service) Deposit(ctx context.Context, req models.PaymentCreate) (*models.PaymentCreated, error) {
	if err := s.checkPayload(req); err != nil {
		return nil, err
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}

	var created models.PaymentCreated
	if err := s.client.Post(ctx, "/api/payments/create", req, &created); err != nil {
		return nil, apperrors.NewPaymentError("", req.Method, "deposit", "create failed", err)
	}
	s.logger.Info().
		Str("payment_id", created.PaymentID).
		Str("method", req.Method).
		Float64("amount", req.Amount).
		Msg("Deposit created")
	return &created, nil
}

// Withdraw files a withdrawal request. Insufficient balance is surfaced
// as ErrInsufficientBalance so callers can render it inline.
func (s *Service) Withdraw(ctx context.Context, req models.WithdrawRequest) (*models.WithdrawCreated, error) {
	if err := s.checkPayload(req); err != nil {
		return nil, err
	}

	var created models.WithdrawCreated
	if err := s.client.Post(ctx, "/api/payments/withdraw", req, &created); err != nil {
		var apiErr *apperrors.APIError
		if apperrors.As(err, &apiErr) && apiErr.Detail == "Insufficient balance" {
			return nil, apperrors.ErrInsufficientBalance
		}
		return nil, apperrors.NewPaymentError("", req.Method, "withdraw", "request failed", err)
	}
	s.logger.Info().
		Str("withdrawal_id", created.WithdrawalID).
		Float64("amount", req.Amount).
		Msg("Withdrawal requested")
	return &created, nil
}

// PaymentHistory fetches the payment ledger, newest first.
func (s *Service) PaymentHistory(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.client.Get(ctx, "/api/payments/history", &payments); err != nil {
		return nil, fmt.Errorf("fetching payment history: %w", err)
	}
	return payments, nil
}

// VerifyPayment checks a payment's settlement status with the provider.
func (s *Service) VerifyPayment(ctx context.Context, paymentID string) (*models.PaymentVerification, error) {
	var verification models.PaymentVerification
	if err := s.client.Get(ctx, "/api/payments/verify/"+paymentID, &verification); err != nil {
		return nil, fmt.Errorf("verifying payment %s: %w", paymentID, err)
	}
	return &verification, nil
}

// FlowSummary aggregates a payment history into settled deposit and
// withdrawal totals. Sums are carried in decimal so a long ledger of
// cent-denominated amounts cannot drift.
type FlowSummary struct {
	Deposits    decimal.Decimal
	Withdrawals decimal.Decimal
	Pending     int
}

// Net returns deposits minus withdrawals.
func (f FlowSummary) Net() decimal.Decimal {
	return f.Deposits.Sub(f.Withdrawals)
}

// SummarizeFlow totals the completed entries of a payment history.
// Withdrawals are stored with negative amounts and reported positive.
func SummarizeFlow(payments []models.Payment) FlowSummary {
	var summary FlowSummary
	for _, p := range payments {
		if p.Status != models.PaymentCompleted {
			if p.Status == models.PaymentPending {
				summary.Pending++
			}
			continue
		}
		amount := decimal.NewFromFloat(p.Amount)
		if p.IsWithdrawal() {
			summary.Withdrawals = summary.Withdrawals.Add(amount.Neg())
		} else {
			summary.Deposits = summary.Deposits.Add(amount)
		}
	}
	return summary
}

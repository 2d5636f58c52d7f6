package backoffice

import (
	"context"
	"fmt"
	"net/url"

	"mt5-backoffice/internal/models"
)

// EquityCurve fetches the daily equity samples for the equity chart.
func (s *Service) EquityCurve(ctx context.Context) ([]models.EquityPoint, error) {
	var points []models.EquityPoint
	if err := s.client.Get(ctx, "/api/charts/equity-data", &points); err != nil {
		return nil, fmt.Errorf("fetching equity data: %w", err)
	}
	return points, nil
}

// MonthlyDeposits fetches the per-month deposit totals.
func (s *Service) MonthlyDeposits(ctx context.Context) ([]models.MonthlyFlow, error) {
	var flows []models.MonthlyFlow
	if err := s.client.Get(ctx, "/api/charts/monthly-deposits", &flows); err != nil {
		return nil, fmt.Errorf("fetching monthly deposits: %w", err)
	}
	return flows, nil
}

// MonthlyWithdrawals fetches the per-month withdrawal totals.
func (s *Service) MonthlyWithdrawals(ctx context.Context) ([]models.MonthlyFlow, error) {
	var flows []models.MonthlyFlow
	if err := s.client.Get(ctx, "/api/charts/monthly-withdrawals", &flows); err != nil {
		return nil, fmt.Errorf("fetching monthly withdrawals: %w", err)
	}
	return flows, nil
}

// FlowComparison fetches deposits and withdrawals side by side per month.
func (s *Service) FlowComparison(ctx context.Context) ([]models.FlowComparison, error) {
	var rows []models.FlowComparison
	if err := s.client.Get(ctx, "/api/charts/deposit-withdrawal-comparison", &rows); err != nil {
		return nil, fmt.Errorf("fetching flow comparison: %w", err)
	}
	return rows, nil
}

// TradingPerformance fetches the aggregate win/loss summary.
func (s *Service) TradingPerformance(ctx context.Context) (*models.TradingPerformance, error) {
	var perf models.TradingPerformance
	if err := s.client.Get(ctx, "/api/charts/trading-performance", &perf); err != nil {
		return nil, fmt.Errorf("fetching trading performance: %w", err)
	}
	return &perf, nil
}

// SymbolPerformance fetches the win/loss summary for a single symbol.
func (s *Service) SymbolPerformance(ctx context.Context, symbol string) (*models.TradingPerformance, error) {
	var perf models.TradingPerformance
	path := "/api/charts/symbol-performance/" + url.PathEscape(symbol)
	if err := s.client.Get(ctx, path, &perf); err != nil {
		return nil, fmt.Errorf("fetching performance for %s: %w", symbol, err)
	}
	return &perf, nil
}

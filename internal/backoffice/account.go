package backoffice

import (
	"context"
	"fmt"

	"mt5-backoffice/internal/models"
	"mt5-backoffice/pkg/utils"
)

// AccountInfo fetches the MT5 account snapshot. The backend falls back to
// a wallet-derived snapshot when the user has no terminal account yet.
func (s *Service) AccountInfo(ctx context.Context) (*models.AccountInfo, error) {
	return utils.RetryWithResult(ctx, utils.DefaultRetryConfig(), func() (*models.AccountInfo, error) {
		var info models.AccountInfo
		if err := s.client.Get(ctx, "/api/mt5/account", &info); err != nil {
			return nil, fmt.Errorf("fetching account info: %w", err)
		}
		return &info, nil
	})
}

// Positions fetches the open positions.
func (s *Service) Positions(ctx context.Context) ([]models.Position, error) {
	var positions []models.Position
	if err := s.client.Get(ctx, "/api/mt5/positions", &positions); err != nil {
		return nil, fmt.Errorf("fetching positions: %w", err)
	}
	return positions, nil
}

// Orders fetches the pending orders.
func (s *Service) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.client.Get(ctx, "/api/mt5/orders", &orders); err != nil {
		return nil, fmt.Errorf("fetching orders: %w", err)
	}
	return orders, nil
}

// History fetches the trade history (the backend reports the last 30 days).
func (s *Service) History(ctx context.Context) ([]models.HistoryDeal, error) {
	var deals []models.HistoryDeal
	if err := s.client.Get(ctx, "/api/mt5/history", &deals); err != nil {
		return nil, fmt.Errorf("fetching trade history: %w", err)
	}
	return deals, nil
}

// CreateAccount provisions a new MT5 terminal account.
func (s *Service) CreateAccount(ctx context.Context, req models.AccountCreateRequest) (*models.MT5AccountLink, error) {
	var resp struct {
		Message string                `json:"message"`
		Account models.MT5AccountLink `json:"account"`
	}
	if err := s.client.Post(ctx, "/api/mt5/account/create", req, &resp); err != nil {
		return nil, fmt.Errorf("creating MT5 account: %w", err)
	}
	s.logger.Info().Int("login", resp.Account.Login).Msg("MT5 account created")
	return &resp.Account, nil
}

// OpenTrade opens a trade through the backend bridge.
func (s *Service) OpenTrade(ctx context.Context, req models.TradeRequest) error {
	var ack statusMessage
	if err := s.client.Post(ctx, "/api/mt5/trade/open", req, &ack); err != nil {
		return fmt.Errorf("opening trade: %w", err)
	}
	s.logger.Info().Str("symbol", req.Symbol).Str("result", ack.Message).Msg("Trade opened")
	return nil
}

// CloseTrade closes a trade through the backend bridge.
func (s *Service) CloseTrade(ctx context.Context, req models.TradeRequest) error {
	var ack statusMessage
	if err := s.client.Post(ctx, "/api/mt5/trade/close", req, &ack); err != nil {
		return fmt.Errorf("closing trade: %w", err)
	}
	s.logger.Info().Str("result", ack.Message).Msg("Trade closed")
	return nil
}

// UpdateBalance applies a balance operation to the MT5 account.
func (s *Service) UpdateBalance(ctx context.Context, op models.BalanceOperation) (float64, error) {
	var resp struct {
		Message    string  `json:"message"`
		NewBalance float64 `json:"new_balance"`
	}
	if err := s.client.Post(ctx, "/api/mt5/balance", op, &resp); err != nil {
		return 0, fmt.Errorf("updating balance: %w", err)
	}
	return resp.NewBalance, nil
}

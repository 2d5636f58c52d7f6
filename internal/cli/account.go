// Package cli provides the command-line interface for the back-office client.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mt5-backoffice/internal/models"
)

// addAccountCommands adds MT5 account and trading commands.
func addAccountCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newAccountCmd(app))
	rootCmd.AddCommand(newPositionsCmd(app))
	rootCmd.AddCommand(newOrdersCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))
	rootCmd.AddCommand(newTradeCmd(app))
	rootCmd.AddCommand(newBalanceCmd(app))
}

// sessionLogin returns the first linked MT5 login for snapshot keys.
func sessionLogin(app *App) int {
	if user := app.Session.CurrentUser(); user != nil && len(user.MT5Accounts) > 0 {
		return user.MT5Accounts[0].Login
	}
	return 0
}

func newAccountCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show the MT5 account summary",
		Long: `Display the MT5 account snapshot: balance, equity, margin and
floating P&L.

With --offline the last cached snapshot is shown without contacting
the backend.`,
		Example: `  backoffice account
  backoffice account --offline`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			offline, _ := cmd.Flags().GetBool("offline")
			login := sessionLogin(app)

			var info *models.AccountInfo
			source := SourceBackend
			if offline {
				cached, fetchedAt, err := cachedAccount(cmd.Context(), app, login)
				if err != nil {
					output.Error("No cached account snapshot: %v", err)
					return err
				}
				info = cached
				source = SourceCache
				output.Dim("Snapshot from %s", FormatAge(fetchedAt))
			} else {
				fetched, err := app.Backoffice.AccountInfo(cmd.Context())
				if err != nil {
					output.Error("Failed to fetch account: %v", err)
					return err
				}
				info = fetched
				if app.Store != nil {
					if err := app.Store.SaveAccount(cmd.Context(), login, info); err != nil {
						app.Logger.Warn().Err(err).Msg("Failed to cache account snapshot")
					}
				}
			}

			if output.IsJSON() {
				return output.JSON(info)
			}

			output.Bold("MT5 Account %s", output.SourceTag(source))
			if info.Login != 0 {
				output.Printf("  Login:       %d\n", info.Login)
			}
			if info.Server != "" {
				output.Printf("  Server:      %s\n", info.Server)
			}
			output.Printf("  Balance:     %s\n", FormatMoney(info.Balance, info.Currency))
			output.Printf("  Equity:      %s\n", FormatMoney(info.Equity, info.Currency))
			output.Printf("  Margin:      %s\n", FormatMoney(info.Margin, info.Currency))
			output.Printf("  Free Margin: %s\n", FormatMoney(info.FreeMargin, info.Currency))
			output.Printf("  Profit:      %s\n", output.FormatPnL(info.Profit))
			if info.Leverage > 0 {
				output.Printf("  Leverage:    1:%d\n", info.Leverage)
			}
			return nil
		},
	}
	cmd.Flags().Bool("offline", false, "show the last cached snapshot")
	return cmd
}

func cachedAccount(ctx context.Context, app *App, login int) (*models.AccountInfo, time.Time, error) {
	if app.Store == nil {
		return nil, time.Time{}, fmt.Errorf("snapshot cache disabled")
	}
	return app.Store.GetAccount(ctx, login)
}

func newPositionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "List open positions",
		Example: `  backoffice positions
  backoffice positions --offline`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			offline, _ := cmd.Flags().GetBool("offline")
			login := sessionLogin(app)

			var positions []models.Position
			if offline {
				if app.Store == nil {
					return fmt.Errorf("snapshot cache disabled")
				}
				cached, fetchedAt, err := app.Store.GetPositions(cmd.Context(), login)
				if err != nil {
					output.Error("No cached positions: %v", err)
					return err
				}
				positions = cached
				output.SourceLine(SourceCache, "Snapshot from %s", FormatAge(fetchedAt))
			} else {
				fetched, err := app.Backoffice.Positions(cmd.Context())
				if err != nil {
					output.Error("Failed to fetch positions: %v", err)
					return err
				}
				positions = fetched
				if app.Store != nil {
					if err := app.Store.SavePositions(cmd.Context(), login, positions); err != nil {
						app.Logger.Warn().Err(err).Msg("Failed to cache positions")
					}
				}
			}

			if output.IsJSON() {
				return output.JSON(positions)
			}

			if len(positions) == 0 {
				output.Info("No open positions")
				return nil
			}

			table := NewTable(output, "SYMBOL", "TYPE", "LOTS", "OPEN", "CURRENT", "SL", "TP", "PROFIT")
			var total float64
			for _, p := range positions {
				table.AddRow(
					p.Symbol,
					p.Type,
					FormatLots(p.LotSize),
					FormatPrice(p.Price),
					FormatPrice(p.CurrentPrice),
					FormatPrice(p.StopLoss),
					FormatPrice(p.TakeProfit),
					output.FormatPnL(p.Profit),
				)
				total += p.Profit
			}
			table.Render()
			output.Println()
			output.Printf("Floating P&L: %s\n", output.FormatPnL(total))
			return nil
		},
	}
	cmd.Flags().Bool("offline", false, "show the last cached snapshot")
	return cmd
}

func newOrdersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Short:   "List pending orders",
		Example: `  backoffice orders`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			orders, err := app.Backoffice.Orders(cmd.Context())
			if err != nil {
				output.Error("Failed to fetch orders: %v", err)
				return err
			}
			if app.Store != nil {
				if err := app.Store.SaveOrders(cmd.Context(), sessionLogin(app), orders); err != nil {
					app.Logger.Warn().Err(err).Msg("Failed to cache orders")
				}
			}

			if output.IsJSON() {
				return output.JSON(orders)
			}

			if len(orders) == 0 {
				output.Info("No pending orders")
				return nil
			}

			table := NewTable(output, "TICKET", "SYMBOL", "TYPE", "VOLUME", "PRICE", "SL", "TP")
			for _, o := range orders {
				table.AddRow(
					fmt.Sprintf("%d", o.Ticket),
					o.Symbol,
					o.Type,
					FormatLots(o.Volume),
					FormatPrice(o.Price),
					FormatPrice(o.StopLoss),
					FormatPrice(o.TakeProfit),
				)
			}
			table.Render()
			return nil
		},
	}
	return cmd
}

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show trade history",
		Long:  "Display closed trades (the backend reports the last 30 days).",
		Example: `  backoffice history
  backoffice history --offline`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			offline, _ := cmd.Flags().GetBool("offline")
			login := sessionLogin(app)

			var deals []models.HistoryDeal
			if offline {
				if app.Store == nil {
					return fmt.Errorf("snapshot cache disabled")
				}
				cached, fetchedAt, err := app.Store.GetHistory(cmd.Context(), login)
				if err != nil {
					output.Error("No cached history: %v", err)
					return err
				}
				deals = cached
				output.SourceLine(SourceCache, "Snapshot from %s", FormatAge(fetchedAt))
			} else {
				fetched, err := app.Backoffice.History(cmd.Context())
				if err != nil {
					output.Error("Failed to fetch history: %v", err)
					return err
				}
				deals = fetched
				if app.Store != nil {
					if err := app.Store.SaveHistory(cmd.Context(), login, deals); err != nil {
						app.Logger.Warn().Err(err).Msg("Failed to cache history")
					}
				}
			}

			if output.IsJSON() {
				return output.JSON(deals)
			}

			if len(deals) == 0 {
				output.Info("No closed trades in the reporting window")
				return nil
			}

			table := NewTable(output, "TIME", "SYMBOL", "TYPE", "LOTS", "PRICE", "SWAP", "PROFIT")
			var total float64
			for _, d := range deals {
				table.AddRow(
					FormatUnix(d.Time),
					d.Symbol,
					d.Type,
					FormatLots(d.LotSize),
					FormatPrice(d.Price),
					FormatUSD(d.Swap),
					output.FormatPnL(d.Profit),
				)
				total += d.Profit
			}
			table.Render()
			output.Println()
			output.Printf("Net result: %s over %d deals\n", output.FormatPnL(total), len(deals))
			return nil
		},
	}
	cmd.Flags().Bool("offline", false, "show the last cached snapshot")
	return cmd
}

func newTradeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Open or close trades through the MT5 bridge",
	}
	cmd.AddCommand(newTradeOpenCmd(app))
	cmd.AddCommand(newTradeCloseCmd(app))
	return cmd
}

func newTradeOpenCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open",
		Short:   "Open a trade",
		Example: `  backoffice trade open --symbol EURUSD --type buy --volume 0.10 --price 1.0850`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			req := models.TradeRequest{LoginID: sessionLogin(app)}
			req.Symbol, _ = cmd.Flags().GetString("symbol")
			req.Type, _ = cmd.Flags().GetString("type")
			req.Volume, _ = cmd.Flags().GetFloat64("volume")
			req.Price, _ = cmd.Flags().GetFloat64("price")
			req.StopLoss, _ = cmd.Flags().GetFloat64("sl")
			req.TakeProfit, _ = cmd.Flags().GetFloat64("tp")
			req.Comment, _ = cmd.Flags().GetString("comment")

			if req.Symbol == "" || req.Volume <= 0 {
				output.Error("Both --symbol and a positive --volume are required")
				return fmt.Errorf("missing trade parameters")
			}

			if err := app.Backoffice.OpenTrade(cmd.Context(), req); err != nil {
				output.Error("Failed to open trade: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"success": true, "symbol": req.Symbol})
			}
			output.Success("✓ Trade opened: %s %s %s lots", req.Type, req.Symbol, FormatLots(req.Volume))
			return nil
		},
	}
	cmd.Flags().String("symbol", "", "instrument symbol")
	cmd.Flags().String("type", "buy", "trade direction (buy/sell)")
	cmd.Flags().Float64("volume", 0, "lot size")
	cmd.Flags().Float64("price", 0, "requested price")
	cmd.Flags().Float64("sl", 0, "stop loss price")
	cmd.Flags().Float64("tp", 0, "take profit price")
	cmd.Flags().String("comment", "", "order comment")
	return cmd
}

func newTradeCloseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "close",
		Short:   "Close an open position",
		Example: `  backoffice trade close --position 123456 --symbol EURUSD --volume 0.10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			req := models.TradeRequest{LoginID: sessionLogin(app)}
			req.PositionID, _ = cmd.Flags().GetInt("position")
			req.Symbol, _ = cmd.Flags().GetString("symbol")
			req.Volume, _ = cmd.Flags().GetFloat64("volume")
			req.Price, _ = cmd.Flags().GetFloat64("price")
			req.Type, _ = cmd.Flags().GetString("type")

			if req.PositionID == 0 {
				output.Error("--position is required")
				return fmt.Errorf("missing position id")
			}

			if err := app.Backoffice.CloseTrade(cmd.Context(), req); err != nil {
				output.Error("Failed to close trade: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"success": true, "position": req.PositionID})
			}
			output.Success("✓ Position %d closed", req.PositionID)
			return nil
		},
	}
	cmd.Flags().Int("position", 0, "position id to close")
	cmd.Flags().String("symbol", "", "instrument symbol")
	cmd.Flags().String("type", "", "closing direction")
	cmd.Flags().Float64("volume", 0, "lot size to close")
	cmd.Flags().Float64("price", 0, "requested price")
	return cmd
}

func newBalanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "balance",
		Short:   "Show the wallet balance",
		Example: `  backoffice balance`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			balance, currency, err := app.Backoffice.Balance(cmd.Context())
			if err != nil {
				output.Error("Failed to fetch balance: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"balance": balance, "currency": currency})
			}
			output.Printf("Balance: %s\n", FormatMoney(balance, currency))
			return nil
		},
	}
}

// Package cli provides the command-line interface for the back-office client.
package cli

import (
	"github.com/spf13/cobra"

	"mt5-backoffice/internal/models"
)

// addChartCommands adds analytics commands.
func addChartCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newChartsCmd(app))
}

func newChartsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Account analytics",
	}
	cmd.AddCommand(newChartsEquityCmd(app))
	cmd.AddCommand(newChartsFlowCmd(app))
	cmd.AddCommand(newChartsPerformanceCmd(app))
	return cmd
}

func newChartsEquityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "equity",
		Short: "Show the equity curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			points, err := app.Backoffice.EquityCurve(cmd.Context())
			if err != nil {
				output.Error("Failed to fetch equity data: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(points)
			}
			if len(points) == 0 {
				output.Info("No equity data yet")
				return nil
			}

			table := NewTable(output, "DATE", "EQUITY")
			for _, p := range points {
				table.AddRow(p.Date, FormatUSD(p.Equity))
			}
			table.Render()

			first, last := points[0].Equity, points[len(points)-1].Equity
			output.Println()
			output.Printf("Change: %s", output.FormatPnL(last-first))
			if first != 0 {
				output.Printf(" (%s)", output.FormatPercent((last-first)/first*100))
			}
			output.Println()
			return nil
		},
	}
}

func newChartsFlowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Show monthly deposits and withdrawals",
		Example: `  backoffice charts flow
  backoffice charts flow --deposits
  backoffice charts flow --withdrawals`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			depositsOnly, _ := cmd.Flags().GetBool("deposits")
			withdrawalsOnly, _ := cmd.Flags().GetBool("withdrawals")

			if depositsOnly || withdrawalsOnly {
				fetch := app.Backoffice.MonthlyDeposits
				label := "Deposits"
				if withdrawalsOnly {
					fetch = app.Backoffice.MonthlyWithdrawals
					label = "Withdrawals"
				}
				flows, err := fetch(cmd.Context())
				if err != nil {
					output.Error("Failed to fetch monthly flow: %v", err)
					return err
				}
				if output.IsJSON() {
					return output.JSON(flows)
				}
				table := NewTable(output, "MONTH", label)
				for _, f := range flows {
					table.AddRow(f.Month, FormatUSD(f.Amount))
				}
				table.Render()
				return nil
			}

			rows, err := app.Backoffice.FlowComparison(cmd.Context())
			if err != nil {
				output.Error("Failed to fetch flow comparison: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(rows)
			}
			table := NewTable(output, "MONTH", "DEPOSITS", "WITHDRAWALS", "NET")
			for _, r := range rows {
				table.AddRow(
					r.Month,
					FormatUSD(r.Deposits),
					FormatUSD(r.Withdrawals),
					output.FormatPnL(r.Deposits-r.Withdrawals),
				)
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().Bool("deposits", false, "deposits only")
	cmd.Flags().Bool("withdrawals", false, "withdrawals only")
	return cmd
}

func newChartsPerformanceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "performance",
		Short: "Show trading performance",
		Example: `  backoffice charts performance
  backoffice charts performance --symbol EURUSD`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			symbol, _ := cmd.Flags().GetString("symbol")

			var err error
			var perf *models.TradingPerformance
			if symbol != "" {
				perf, err = app.Backoffice.SymbolPerformance(cmd.Context(), symbol)
			} else {
				perf, err = app.Backoffice.TradingPerformance(cmd.Context())
			}
			if err != nil {
				output.Error("Failed to fetch performance: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(perf)
			}

			title := "Trading Performance"
			if symbol != "" {
				title = symbol + " Performance"
			}
			output.Bold("%s", title)
			output.Printf("  Trades:    %d (%d won, %d lost)\n",
				perf.TotalTrades, perf.WinningTrades, perf.LosingTrades)
			output.Printf("  Win rate:  %.1f%%\n", perf.WinRate)
			output.Printf("  Profit:    %s\n", output.FormatPnL(perf.TotalProfit))
			output.Printf("  Loss:      %s\n", output.FormatPnL(perf.TotalLoss))
			output.Printf("  Net:       %s\n", output.FormatPnL(perf.NetProfit))
			return nil
		},
	}
	cmd.Flags().String("symbol", "", "restrict to one symbol")
	return cmd
}

// Package cli provides the command-line interface for the back-office client.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mt5-backoffice/internal/models"
)

// addAdminCommands adds back-office staff commands. Every subcommand is
// gated locally on the admin role; the backend enforces it again.
func addAdminCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newAdminCmd(app))
}

func newAdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Back-office administration",
	}
	cmd.AddCommand(newAdminDashboardCmd(app))
	cmd.AddCommand(newAdminUsersCmd(app))
	cmd.AddCommand(newAdminKYCCmd(app))
	cmd.AddCommand(newAdminActivateCmd(app))
	cmd.AddCommand(newAdminBalanceSetCmd(app))
	cmd.AddCommand(newAdminPaymentsCmd(app))
	cmd.AddCommand(newAdminPaymentStatusCmd(app))
	cmd.AddCommand(newAdminAnalyticsCmd(app))
	cmd.AddCommand(newAdminBalanceCmd(app))
	cmd.AddCommand(newAdminAccountCreateCmd(app))
	return cmd
}

func newAdminAccountCreateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "account-create",
		Short:   "Provision a new MT5 terminal account",
		Example: `  backoffice admin account-create --name "Jane Doe" --email jane@example.com --leverage 100 --group demo\\forex`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAdmin(); err != nil {
				output.Error("%v", err)
				return err
			}

			req := models.AccountCreateRequest{}
			req.Name, _ = cmd.Flags().GetString("name")
			req.Email, _ = cmd.Flags().GetString("email")
			req.Phone, _ = cmd.Flags().GetString("phone")
			req.Country, _ = cmd.Flags().GetString("country")
			req.City, _ = cmd.Flags().GetString("city")
			req.Address, _ = cmd.Flags().GetString("address")
			req.Balance, _ = cmd.Flags().GetFloat64("balance")
			req.Leverage, _ = cmd.Flags().GetInt("leverage")
			req.GroupName, _ = cmd.Flags().GetString("group")
			req.Server, _ = cmd.Flags().GetString("server")
			req.Platform, _ = cmd.Flags().GetInt("platform")

			account, err := app.Backoffice.CreateAccount(cmd.Context(), req)
			if err != nil {
				output.Error("Account creation failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(account)
			}
			output.Success("✓ MT5 account created")
			output.Printf("  Login:    %d\n", account.Login)
			if account.Group != "" {
				output.Printf("  Group:    %s\n", account.Group)
			}
			if account.Leverage > 0 {
				output.Printf("  Leverage: 1:%d\n", account.Leverage)
			}
			return nil
		},
	}
	cmd.Flags().String("name", "", "holder name")
	cmd.Flags().String("email", "", "holder email")
	cmd.Flags().String("phone", "", "holder phone")
	cmd.Flags().String("country", "", "holder country")
	cmd.Flags().String("city", "", "holder city")
	cmd.Flags().String("address", "", "holder address")
	cmd.Flags().Float64("balance", 0, "opening balance")
	cmd.Flags().Int("leverage", 100, "account leverage")
	cmd.Flags().String("group", "", "terminal group name")
	cmd.Flags().String("server", "", "terminal server")
	cmd.Flags().Int("platform", 5, "platform version")
	return cmd
}

func newAdminDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the operations overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAdmin(); err != nil {
				output.Error("%v", err)
				return err
			}

			stats, err := app.Backoffice.Dashboard(cmd.Context())
			if err != nil {
				output.Error("Failed to fetch dashboard: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(stats)
			}

			output.Bold("Users")
			output.Printf("  Total:        %d (%d active)\n", stats.Users.Total, stats.Users.Active)
			output.Printf("  KYC pending:  %d\n", stats.Users.KYCPending)
			output.Printf("  KYC approved: %d\n", stats.Users.KYCApproved)
			output.Println()

			output.Box("Money Flow", []string{
				"Deposits:    " + PadLeft(FormatCompact(stats.Payments.TotalDeposits), 10),
				"Withdrawals: " + PadLeft(FormatCompact(stats.Payments.TotalWithdrawals), 10),
				"Net:         " + PadLeft(FormatPnL(stats.Payments.NetFlow), 10),
			})
			output.Println()

			output.Bold("Support")
			output.Printf("  Open tickets:   %d of %d\n", stats.Tickets.Open, stats.Tickets.Total)
			output.Printf("  Docs to review: %d\n", stats.Documents.Pending)
			return nil
		},
	}
}

func newAdminUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users [id]",
		Short: "List users, or show one by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAdmin(); err != nil {
				output.Error("%v", err)
				return err
			}

			if len(args) == 1 {
				user, err := app.Backoffice.User(cmd.Context(), args[0])
				if err != nil {
					output.Error("Failed to fetch user: %v", err)
					return err
				}
				if output.IsJSON() {
					return output.JSON(user)
				}
				showUser(output, user)
				return nil
			}

			users, err := app.Backoffice.Users(cmd.Context())
			if err != nil {
				output.Error("Failed to list users: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(users)
			}

			table := NewTable(output, "ID", "NAME", "EMAIL", "ROLE", "KYC", "BALANCE")
			for _, u := range users {
				table.AddRow(
					TruncateString(u.ID, 12),
					TruncateString(u.Name, 24),
					TruncateString(u.Email, 30),
					u.Role,
					output.StatusTag(u.KYCStatus),
					FormatUSD(u.Balance),
				)
			}
			table.Render()
			return nil
		},
	}
	return cmd
}

func showUser(output *Output, user *models.Profile) {
	output.Bold("%s", user.Name)
	output.Printf("  ID:      %s\n", user.ID)
	output.Printf("  Email:   %s\n", user.Email)
	if user.Phone != "" {
		output.Printf("  Phone:   %s\n", user.Phone)
	}
	if user.Country != "" {
		output.Printf("  Country: %s\n", user.Country)
	}
	output.Printf("  Role:    %s\n", user.Role)
	output.Printf("  KYC:     %s\n", output.StatusTag(user.KYCStatus))
	output.Printf("  Balance: %s\n", FormatUSD(user.Balance))
	output.Printf("  Joined:  %s\n", FormatDate(user.CreatedAt.Time))
	for _, acct := range user.MT5Accounts {
		output.Printf("  MT5:     %d (%s)\n", acct.Login, acct.Group)
	}
}

func newAdminKYCCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "kyc <user-id>",
		Short:   "Set a user's KYC status",
		Args:    cobra.ExactArgs(1),
		Example: `  backoffice admin kyc 6513f... --status approved`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAdmin(); err != nil {
				output.Error("%v", err)
				return err
			}

			status, _ := cmd.Flags().GetString("status")
			err := app.Backoffice.UpdateUserKYC(cmd.Context(), args[0], models.KYCUpdate{Status: status})
			if err != nil {
				output.Error("KYC update failed: %v", err)
				return err
			}
			output.Success("✓ User %s marked %s", args[0], status)
			return nil
		},
	}
	cmd.Flags().String("status", "", "KYC outcome (approved/rejected/pending)")
	return cmd
}

func newAdminActivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <user-id>",
		Short: "Toggle a user's activation flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAdmin(); err != nil {
				output.Error("%v", err)
				return err
			}

			result, err := app.Backoffice.ToggleUserActive(cmd.Context(), args[0])
			if err != nil {
				output.Error("Activation toggle failed: %v", err)
				return err
			}
			output.Success("✓ %s", result)
			return nil
		},
	}
}

func newAdminBalanceSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "balance-set <user-id>",
		Short:   "Replace a user's ledger balance",
		Args:    cobra.ExactArgs(1),
		Example: `  backoffice admin balance-set 6513f... --balance 2500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAdmin(); err != nil {
				output.Error("%v", err)
				return err
			}

			balance, _ := cmd.Flags().GetFloat64("balance")
			err := app.Backoffice.SetUserBalance(cmd.Context(), args[0], models.BalanceSet{Balance: balance})
			if err != nil {
				output.Error("Balance set failed: %v", err)
				return err
			}
			output.Success("✓ Balance for %s set to %s", args[0], FormatUSD(balance))
			return nil
		},
	}
	cmd.Flags().Float64("balance", 0, "new ledger balance")
	return cmd
}

func newAdminPaymentsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "payments",
		Short: "List payments across all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAdmin(); err != nil {
				output.Error("%v", err)
				return err
			}

			payments, err := app.Backoffice.AllPayments(cmd.Context())
			if err != nil {
				output.Error("Failed to list payments: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(payments)
			}
			if len(payments) == 0 {
				output.Info("No payments yet")
				return nil
			}

			table := NewTable(output, "DATE", "USER", "AMOUNT", "METHOD", "STATUS")
			for _, p := range payments {
				table.AddRow(
					FormatDate(p.CreatedAt.Time),
					TruncateString(p.UserID, 12),
					FormatMoney(p.Amount, p.Currency),
					p.Method,
					output.StatusTag(p.Status),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newAdminPaymentStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payment-status <payment-id>",
		Short:   "Override a payment's settlement status",
		Args:    cobra.ExactArgs(1),
		Example: `  backoffice admin payment-status pay_123 --status completed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAdmin(); err != nil {
				output.Error("%v", err)
				return err
			}

			status, _ := cmd.Flags().GetString("status")
			err := app.Backoffice.SetPaymentStatus(cmd.Context(), args[0], models.PaymentStatusUpdate{Status: status})
			if err != nil {
				output.Error("Payment status update failed: %v", err)
				return err
			}
			output.Success("✓ Payment %s marked %s", args[0], status)
			return nil
		},
	}
	cmd.Flags().String("status", "", "settlement status (pending/completed/failed)")
	return cmd
}

func newAdminAnalyticsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show monthly signups and payment volume",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAdmin(); err != nil {
				output.Error("%v", err)
				return err
			}

			analytics, err := app.Backoffice.MonthlyAnalytics(cmd.Context())
			if err != nil {
				output.Error("Failed to fetch analytics: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(analytics)
			}

			output.Bold("Signups")
			table := NewTable(output, "MONTH", "USERS")
			for _, bucket := range analytics.MonthlyUsers {
				table.AddRow(FormatYearMonth(bucket.Month.Year, bucket.Month.Month), fmt.Sprintf("%d", bucket.Count))
			}
			table.Render()
			output.Println()

			output.Bold("Payment volume")
			table = NewTable(output, "MONTH", "VOLUME", "COUNT")
			for _, bucket := range analytics.MonthlyPayments {
				table.AddRow(
					FormatYearMonth(bucket.Month.Year, bucket.Month.Month),
					FormatUSD(bucket.TotalAmount),
					fmt.Sprintf("%d", bucket.Count),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newAdminBalanceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "balance-update",
		Short:   "Apply a balance operation to an MT5 account",
		Example: `  backoffice admin balance-update --amount 100 --type 0 --description "promo credit"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAdmin(); err != nil {
				output.Error("%v", err)
				return err
			}

			op := models.BalanceOperation{}
			op.Amount, _ = cmd.Flags().GetFloat64("amount")
			op.TxnType, _ = cmd.Flags().GetInt("type")
			op.Description, _ = cmd.Flags().GetString("description")
			op.Comment, _ = cmd.Flags().GetString("comment")

			newBalance, err := app.Backoffice.UpdateBalance(cmd.Context(), op)
			if err != nil {
				output.Error("Balance update failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]float64{"new_balance": newBalance})
			}
			output.Success("✓ Balance updated")
			output.Printf("  New balance: %s\n", FormatUSD(newBalance))
			return nil
		},
	}
	cmd.Flags().Float64("amount", 0, "operation amount")
	cmd.Flags().Int("type", 0, "operation type (0 deposit, 1 withdraw, 2 credit, 3 debit)")
	cmd.Flags().String("description", "", "ledger description")
	cmd.Flags().String("comment", "", "terminal comment")
	return cmd
}

// Package cli provides the command-line interface for the back-office client.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mt5-backoffice/internal/backoffice"
	apperrors "mt5-backoffice/internal/errors"
	"mt5-backoffice/internal/models"
	"mt5-backoffice/pkg/utils"
)

// addPaymentCommands adds deposit/withdrawal commands.
func addPaymentCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newDepositCmd(app))
	rootCmd.AddCommand(newWithdrawCmd(app))
	rootCmd.AddCommand(newPaymentsCmd(app))
}

func newDepositCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit funds",
		Long: `Create a deposit through Stripe, card, or bank transfer.

Card details entered here are normalized locally (digit grouping, expiry
zero-padding, Luhn check) before the backend sees them.`,
		Example: `  backoffice deposit --amount 500 --method stripe
  backoffice deposit --amount 250 --method card --card-number "4242 4242 4242 4242" --card-expiry 9/27`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			amount, _ := cmd.Flags().GetFloat64("amount")
			method, _ := cmd.Flags().GetString("method")

			switch method {
			case models.MethodStripe, models.MethodCard, models.MethodBankTransfer:
			default:
				output.Error("Unknown payment method %q (stripe/card/bank_transfer)", method)
				return apperrors.Wrap(apperrors.ErrUnsupportedMethod, method)
			}

			req := models.PaymentCreate{Amount: amount, Method: method}

			if method == models.MethodCard {
				number, _ := cmd.Flags().GetString("card-number")
				expiry, _ := cmd.Flags().GetString("card-expiry")

				number = utils.FormatCardNumber(number)
				if !utils.ValidCardNumber(number) {
					output.Error("Card number failed validation")
					return fmt.Errorf("invalid card number")
				}
				expiry = utils.FormatCardExpiry(expiry)
				if !utils.ValidCardExpiry(expiry) {
					output.Error("Invalid card expiry (expected MM/YY)")
					return fmt.Errorf("invalid card expiry")
				}
				req.Details = map[string]interface{}{
					"card_number": number,
					"card_expiry": expiry,
				}
			}

			created, err := app.Backoffice.Deposit(cmd.Context(), req)
			if err != nil {
				output.Error("Deposit failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(created)
			}
			output.Success("✓ Deposit created: %s", FormatUSD(amount))
			output.Printf("  Payment ID: %s\n", created.PaymentID)
			output.Printf("  Status:     %s\n", output.StatusTag(created.Status))
			if created.Reference != "" {
				output.Printf("  Reference:  %s\n", created.Reference)
			}
			return nil
		},
	}
	cmd.Flags().Float64("amount", 0, "deposit amount")
	cmd.Flags().String("method", "stripe", "payment method (stripe/card/bank_transfer)")
	cmd.Flags().String("card-number", "", "card number (card method)")
	cmd.Flags().String("card-expiry", "", "card expiry MM/YY (card method)")
	return cmd
}

func newWithdrawCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "withdraw",
		Short:   "Request a withdrawal",
		Example: `  backoffice withdraw --amount 200 --method bank_transfer`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			amount, _ := cmd.Flags().GetFloat64("amount")
			method, _ := cmd.Flags().GetString("method")
			reason, _ := cmd.Flags().GetString("reason")

			created, err := app.Backoffice.Withdraw(cmd.Context(), models.WithdrawRequest{
				Amount: amount,
				Method: method,
				Reason: reason,
			})
			if err != nil {
				if apperrors.Is(err, apperrors.ErrInsufficientBalance) {
					output.Error("Insufficient balance for a %s withdrawal", FormatUSD(amount))
					return err
				}
				output.Error("Withdrawal failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(created)
			}
			output.Success("✓ Withdrawal requested: %s", FormatUSD(amount))
			output.Printf("  ID:     %s\n", created.WithdrawalID)
			output.Printf("  Status: %s\n", output.StatusTag(created.Status))
			return nil
		},
	}
	cmd.Flags().Float64("amount", 0, "withdrawal amount")
	cmd.Flags().String("method", "bank_transfer", "payout method (bank_transfer/card)")
	cmd.Flags().String("reason", "", "optional reason")
	return cmd
}

func newPaymentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Show the payment history",
		Example: `  backoffice payments
  backoffice payments --verify <payment-id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			user, err := app.Session.RequireAuth()
			if err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			if paymentID, _ := cmd.Flags().GetString("verify"); paymentID != "" {
				verification, err := app.Backoffice.VerifyPayment(cmd.Context(), paymentID)
				if err != nil {
					output.Error("Verification failed: %v", err)
					return err
				}
				if output.IsJSON() {
					return output.JSON(verification)
				}
				output.Printf("Payment %s: %s (%s via %s)\n",
					verification.PaymentID,
					output.StatusTag(verification.Status),
					FormatUSD(verification.Amount),
					verification.Method)
				return nil
			}

			payments, err := app.Backoffice.PaymentHistory(cmd.Context())
			if err != nil {
				output.Error("Failed to fetch payment history: %v", err)
				return err
			}
			if app.Store != nil {
				if err := app.Store.SavePayments(cmd.Context(), user.ID, payments); err != nil {
					app.Logger.Warn().Err(err).Msg("Failed to cache payments")
				}
			}

			if output.IsJSON() {
				return output.JSON(payments)
			}

			if len(payments) == 0 {
				output.Info("No payments yet")
				return nil
			}

			table := NewTable(output, "DATE", "TYPE", "AMOUNT", "METHOD", "STATUS")
			for _, p := range payments {
				kind := "deposit"
				if p.IsWithdrawal() {
					kind = "withdrawal"
				}
				table.AddRow(
					FormatDate(p.CreatedAt.Time),
					kind,
					FormatMoney(p.Amount, p.Currency),
					p.Method,
					output.StatusTag(p.Status),
				)
			}
			table.Render()

			summary := backoffice.SummarizeFlow(payments)
			output.Println()
			output.Printf("Deposits:    %s\n", "$"+summary.Deposits.StringFixed(2))
			output.Printf("Withdrawals: %s\n", "$"+summary.Withdrawals.StringFixed(2))
			output.Printf("Net flow:    %s\n", "$"+summary.Net().StringFixed(2))
			if summary.Pending > 0 {
				output.Dim("%d payment(s) still pending", summary.Pending)
			}
			return nil
		},
	}
	cmd.Flags().String("verify", "", "verify a single payment by id")
	return cmd
}

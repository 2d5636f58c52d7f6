// Package cli provides the command-line interface for the back-office client.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "mt5-backoffice/internal/errors"
	"mt5-backoffice/internal/models"
	"mt5-backoffice/internal/session"
)

// addAuthCommands adds authentication commands.
func addAuthCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newLoginCmd(app))
	rootCmd.AddCommand(newSignupCmd(app))
	rootCmd.AddCommand(newLogoutCmd(app))
	rootCmd.AddCommand(newAuthStatusCmd(app))
	rootCmd.AddCommand(newWhoamiCmd(app))
	rootCmd.AddCommand(newProfileCmd(app))
}

func newLoginCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the back-office",
		Long: `Login to the back-office backend.

Credentials come from flags, then credentials.toml, then an interactive
prompt. On success the session token is persisted and the MT5 terminal
bridge is connected in the background.`,
		Example: `  backoffice login
  backoffice login --email you@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if app.Session.CurrentUser() != nil {
				output.Success("✓ Already logged in as %s", app.Session.CurrentUser().Email)
				return nil
			}

			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			if email == "" {
				email = app.Config.Credentials.Backoffice.Email
			}
			if password == "" {
				password = app.Config.Credentials.Backoffice.Password
			}

			if email == "" {
				var err error
				email, err = promptLine("Email: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			result := app.Session.Login(cmd.Context(), email, password)
			if !result.Success {
				if output.IsJSON() {
					output.JSON(result)
				} else {
					output.Error("%s", result.Error)
				}
				return apperrors.ErrInvalidCredentials
			}

			if output.IsJSON() {
				return output.JSON(result)
			}
			output.Success("✓ Login successful!")
			return showSessionStatus(app, output)
		},
	}

	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password (prefer credentials.toml or the prompt)")

	return cmd
}

func newSignupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new back-office account",
		Long: `Register a new account and start a session.

A successful registration behaves exactly like a login: the token is
persisted and the MT5 bridge connect is attempted.`,
		Example: `  backoffice signup --name "Jane Doe" --email jane@example.com --country US`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			req := models.SignupRequest{}
			req.Name, _ = cmd.Flags().GetString("name")
			req.Email, _ = cmd.Flags().GetString("email")
			req.Phone, _ = cmd.Flags().GetString("phone")
			req.Country, _ = cmd.Flags().GetString("country")
			req.City, _ = cmd.Flags().GetString("city")
			req.Address, _ = cmd.Flags().GetString("address")
			req.ReferralCode, _ = cmd.Flags().GetString("referral")

			var err error
			if req.Name == "" {
				if req.Name, err = promptLine("Name: "); err != nil {
					return err
				}
			}
			if req.Email == "" {
				if req.Email, err = promptLine("Email: "); err != nil {
					return err
				}
			}
			if req.Password, err = promptPassword("Password: "); err != nil {
				return err
			}
			confirm, err := promptPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if req.Password != confirm {
				output.Error("Passwords do not match")
				return fmt.Errorf("passwords do not match")
			}

			result := app.Session.Signup(cmd.Context(), req)
			if !result.Success {
				if output.IsJSON() {
					output.JSON(result)
				} else {
					output.Error("%s", result.Error)
				}
				return fmt.Errorf("registration failed")
			}

			if output.IsJSON() {
				return output.JSON(result)
			}
			output.Success("✓ Account created!")
			return showSessionStatus(app, output)
		},
	}

	cmd.Flags().String("name", "", "full name")
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("phone", "", "phone number")
	cmd.Flags().String("country", "", "country")
	cmd.Flags().String("city", "", "city")
	cmd.Flags().String("address", "", "street address")
	cmd.Flags().String("referral", "", "referral code")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Long: `Disconnect the MT5 bridge and clear the stored session token.

The local session always ends logged out, even when the backend
disconnect call fails.`,
		Example: `  backoffice logout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if app.Session.CurrentToken() == "" {
				output.Warning("Not currently logged in.")
				return nil
			}

			app.Session.Logout(cmd.Context())

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"success":   true,
					"message":   "Logout successful",
					"timestamp": time.Now().Format(time.RFC3339),
				})
			}

			output.Success("✓ Logged out successfully!")
			output.Dim("Session token has been cleared.")
			return nil
		},
	}
}

func newAuthStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "auth-status",
		Short: "Check authentication status",
		Long:  "Display current authentication status and token expiry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			user := app.Session.CurrentUser()
			if user == nil {
				if output.IsJSON() {
					return output.JSON(map[string]bool{"authenticated": false})
				}
				output.Warning("Not authenticated")
				output.Println()
				output.Info("Run 'backoffice login' to authenticate")
				return nil
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"authenticated": true,
					"user":          user,
				})
			}

			output.Success("✓ Authenticated")
			output.Println()
			return showSessionStatus(app, output)
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			user, err := app.Session.RequireAuth()
			if err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}
			if output.IsJSON() {
				return output.JSON(user)
			}
			output.Println(user.Email)
			return nil
		},
	}
}

// showSessionStatus displays profile and token info for the live session.
func showSessionStatus(app *App, output *Output) error {
	user := app.Session.CurrentUser()
	if user == nil {
		return nil
	}

	output.Println()
	output.Bold("Account")
	output.Printf("  Name:       %s\n", user.Name)
	output.Printf("  Email:      %s\n", user.Email)
	output.Printf("  Role:       %s\n", user.Role)
	output.Printf("  Balance:    %s\n", FormatUSD(user.Balance))
	output.Printf("  KYC:        %s\n", output.StatusTag(user.KYCStatus))
	if len(user.MT5Accounts) > 0 {
		output.Printf("  MT5 Login:  %d\n", user.MT5Accounts[0].Login)
	}

	if claims, err := session.ParseClaims(app.Session.CurrentToken()); err == nil && !claims.ExpiresAt.IsZero() {
		output.Println()
		output.Bold("Session")
		remaining := time.Until(claims.ExpiresAt)
		if remaining > 0 {
			output.Printf("  Expires:    %s (%s remaining)\n",
				FormatDateTime(claims.ExpiresAt), FormatDuration(remaining))
		} else {
			output.Printf("  Expires:    %s\n", output.Red("expired"))
		}
	}
	return nil
}

func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	return promptLine(label)
}

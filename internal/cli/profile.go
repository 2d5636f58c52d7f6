// Package cli provides the command-line interface for the back-office client.
package cli

import (
	"github.com/spf13/cobra"

	"mt5-backoffice/internal/models"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			user, err := app.Session.RequireAuth()
			if err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			profile, err := app.Backoffice.Profile(cmd.Context())
			if err != nil {
				output.Error("Failed to fetch profile: %v", err)
				return err
			}
			if app.Store != nil {
				if err := app.Store.SaveProfile(cmd.Context(), user.ID, profile); err != nil {
					app.Logger.Warn().Err(err).Msg("Failed to cache profile")
				}
			}

			if output.IsJSON() {
				return output.JSON(profile)
			}
			showUser(output, profile)
			return nil
		},
	}

	updateCmd := &cobra.Command{
		Use:     "update",
		Short:   "Update profile fields",
		Example: `  backoffice profile update --phone "+1 555 0100" --city Austin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			update := models.ProfileUpdate{}
			update.Name, _ = cmd.Flags().GetString("name")
			update.Phone, _ = cmd.Flags().GetString("phone")
			update.Country, _ = cmd.Flags().GetString("country")
			update.City, _ = cmd.Flags().GetString("city")
			update.Address, _ = cmd.Flags().GetString("address")

			profile, err := app.Backoffice.UpdateProfile(cmd.Context(), update)
			if err != nil {
				output.Error("Update failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(profile)
			}
			output.Success("✓ Profile updated")
			showUser(output, profile)
			return nil
		},
	}
	updateCmd.Flags().String("name", "", "full name")
	updateCmd.Flags().String("phone", "", "phone number")
	updateCmd.Flags().String("country", "", "country")
	updateCmd.Flags().String("city", "", "city")
	updateCmd.Flags().String("address", "", "street address")
	cmd.AddCommand(updateCmd)

	return cmd
}

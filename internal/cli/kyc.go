// Package cli provides the command-line interface for the back-office client.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "mt5-backoffice/internal/errors"
	"mt5-backoffice/internal/models"
)

// addKYCCommands adds document and bank-details commands.
func addKYCCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newDocumentsCmd(app))
	rootCmd.AddCommand(newBankDetailsCmd(app))
}

func newDocumentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "KYC document management",
	}
	cmd.AddCommand(newDocumentsUploadCmd(app))
	cmd.AddCommand(newDocumentsListCmd(app))
	cmd.AddCommand(newDocumentsShowCmd(app))
	cmd.AddCommand(newDocumentsReviewCmd(app))
	return cmd
}

func newDocumentsUploadCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "upload <file>",
		Short:   "Upload a KYC document",
		Args:    cobra.ExactArgs(1),
		Example: `  backoffice documents upload passport.pdf --type passport`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			docType, _ := cmd.Flags().GetString("type")
			doc, err := app.Backoffice.UploadDocument(cmd.Context(), docType, args[0])
			if err != nil {
				output.Error("Upload failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(doc)
			}
			output.Success("✓ Document uploaded")
			output.Printf("  ID:     %s\n", doc.ID)
			output.Printf("  Type:   %s\n", doc.DocumentType)
			output.Printf("  Status: %s\n", output.StatusTag(doc.Status))
			return nil
		},
	}
	cmd.Flags().String("type", "id", "document type (id/passport/utility_bill/bank_statement)")
	return cmd
}

func newDocumentsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List uploaded documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			docs, err := app.Backoffice.Documents(cmd.Context())
			if err != nil {
				output.Error("Failed to list documents: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(docs)
			}
			if len(docs) == 0 {
				output.Info("No documents uploaded yet")
				return nil
			}

			table := NewTable(output, "ID", "TYPE", "FILE", "STATUS", "UPLOADED")
			for _, d := range docs {
				table.AddRow(
					TruncateString(d.ID, 12),
					d.DocumentType,
					TruncateString(d.FileName, 30),
					output.StatusTag(d.Status),
					FormatDate(d.UploadedAt.Time),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newDocumentsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			doc, err := app.Backoffice.Document(cmd.Context(), args[0])
			if err != nil {
				output.Error("Failed to fetch document: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(doc)
			}
			output.Bold("Document %s", doc.ID)
			output.Printf("  Type:     %s\n", doc.DocumentType)
			output.Printf("  File:     %s (%s)\n", doc.FileName, doc.MimeType)
			output.Printf("  Status:   %s\n", output.StatusTag(doc.Status))
			output.Printf("  Uploaded: %s\n", FormatDateTime(doc.UploadedAt.Time))
			if doc.ReviewedAt != nil {
				output.Printf("  Reviewed: %s\n", FormatDateTime(doc.ReviewedAt.Time))
			}
			if doc.ReviewerNotes != "" {
				output.Printf("  Notes:    %s\n", doc.ReviewerNotes)
			}
			return nil
		},
	}
}

func newDocumentsReviewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "review <id>",
		Short:   "Approve or reject a document (admin)",
		Args:    cobra.ExactArgs(1),
		Example: `  backoffice documents review 6513f... --status approved`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAdmin(); err != nil {
				output.Error("%v", err)
				return err
			}

			status, _ := cmd.Flags().GetString("status")
			notes, _ := cmd.Flags().GetString("notes")

			err := app.Backoffice.ReviewDocument(cmd.Context(), args[0], models.DocumentReview{
				Status: status,
				Notes:  notes,
			})
			if err != nil {
				output.Error("Review failed: %v", err)
				return err
			}
			output.Success("✓ Document %s marked %s", args[0], status)
			return nil
		},
	}
	cmd.Flags().String("status", "", "review outcome (approved/rejected/pending)")
	cmd.Flags().String("notes", "", "reviewer notes")
	return cmd
}

func newBankDetailsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank-details",
		Short: "Withdrawal bank account management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the saved bank account",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			details, err := app.Backoffice.BankDetails(cmd.Context())
			if err != nil {
				if apperrors.Is(err, apperrors.ErrNotFound) {
					output.Info("No bank details saved. Use 'backoffice bank-details set'.")
					return nil
				}
				output.Error("Failed to fetch bank details: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(details)
			}
			output.Bold("Bank Account")
			output.Printf("  Bank:     %s\n", details.BankName)
			output.Printf("  Holder:   %s\n", details.AccountName)
			output.Printf("  Number:   %s\n", maskAccountNumber(details.AccountNumber))
			if details.SwiftCode != "" {
				output.Printf("  SWIFT:    %s\n", details.SwiftCode)
			}
			if details.IBAN != "" {
				output.Printf("  IBAN:     %s\n", details.IBAN)
			}
			if details.Verified {
				output.Printf("  Verified: %s\n", output.Green("yes"))
			} else {
				output.Printf("  Verified: %s\n", output.Yellow("no"))
			}
			return nil
		},
	})

	setCmd := &cobra.Command{
		Use:     "set",
		Short:   "Save the withdrawal bank account",
		Example: `  backoffice bank-details set --bank "First National" --holder "Jane Doe" --number 12345678`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			details := models.BankDetails{}
			details.BankName, _ = cmd.Flags().GetString("bank")
			details.AccountName, _ = cmd.Flags().GetString("holder")
			details.AccountNumber, _ = cmd.Flags().GetString("number")
			details.RoutingNumber, _ = cmd.Flags().GetString("routing")
			details.SwiftCode, _ = cmd.Flags().GetString("swift")
			details.IBAN, _ = cmd.Flags().GetString("iban")

			saved, err := app.Backoffice.SaveBankDetails(cmd.Context(), details)
			if err != nil {
				output.Error("Failed to save bank details: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(saved)
			}
			output.Success("✓ Bank details saved for %s", saved.BankName)
			return nil
		},
	}
	setCmd.Flags().String("bank", "", "bank name")
	setCmd.Flags().String("holder", "", "account holder name")
	setCmd.Flags().String("number", "", "account number")
	setCmd.Flags().String("routing", "", "routing number")
	setCmd.Flags().String("swift", "", "SWIFT code")
	setCmd.Flags().String("iban", "", "IBAN")
	cmd.AddCommand(setCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Remove the saved bank account",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			if err := app.Backoffice.DeleteBankDetails(cmd.Context()); err != nil {
				output.Error("Failed to delete bank details: %v", err)
				return err
			}
			output.Success("✓ Bank details removed")
			return nil
		},
	})

	return cmd
}

// maskAccountNumber hides all but the last four digits.
func maskAccountNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	return fmt.Sprintf("****%s", number[len(number)-4:])
}

// Package cli provides the command-line interface for the back-office client.
package cli

import (
	"github.com/spf13/cobra"

	"mt5-backoffice/internal/models"
)

// addTicketCommands adds support ticket commands.
func addTicketCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newTicketCmd(app))
}

func newTicketCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Support ticket management",
	}
	cmd.AddCommand(newTicketCreateCmd(app))
	cmd.AddCommand(newTicketListCmd(app))
	cmd.AddCommand(newTicketShowCmd(app))
	cmd.AddCommand(newTicketReplyCmd(app))
	cmd.AddCommand(newTicketCloseCmd(app))
	cmd.AddCommand(newTicketAdminCmd(app))
	return cmd
}

func newTicketCreateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Open a new support ticket",
		Example: `  backoffice ticket create --subject "Withdrawal stuck" --category billing --priority high --message "My withdrawal from Monday has not settled."`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			req := models.TicketCreate{}
			req.Subject, _ = cmd.Flags().GetString("subject")
			req.Description, _ = cmd.Flags().GetString("message")
			req.Category, _ = cmd.Flags().GetString("category")
			req.Priority, _ = cmd.Flags().GetString("priority")

			ticket, err := app.Backoffice.CreateTicket(cmd.Context(), req)
			if err != nil {
				output.Error("Failed to create ticket: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(ticket)
			}
			output.Success("✓ Ticket created")
			output.Printf("  ID:       %s\n", ticket.ID)
			output.Printf("  Subject:  %s\n", ticket.Subject)
			output.Printf("  Priority: %s\n", ticket.Priority)
			return nil
		},
	}
	cmd.Flags().String("subject", "", "ticket subject")
	cmd.Flags().String("message", "", "problem description")
	cmd.Flags().String("category", "general", "category (technical/billing/trading/general)")
	cmd.Flags().String("priority", "medium", "priority (low/medium/high/urgent)")
	return cmd
}

func newTicketListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			tickets, err := app.Backoffice.Tickets(cmd.Context())
			if err != nil {
				output.Error("Failed to list tickets: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(tickets)
			}
			renderTicketTable(output, tickets)
			return nil
		},
	}
}

func renderTicketTable(output *Output, tickets []models.Ticket) {
	if len(tickets) == 0 {
		output.Info("No tickets")
		return
	}
	table := NewTable(output, "ID", "SUBJECT", "CATEGORY", "PRIORITY", "STATUS", "UPDATED")
	for _, t := range tickets {
		table.AddRow(
			TruncateString(t.ID, 12),
			TruncateString(t.Subject, 40),
			t.Category,
			t.Priority,
			output.StatusTag(t.Status),
			FormatDate(t.UpdatedAt.Time),
		)
	}
	table.Render()
}

func newTicketShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a ticket with its thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			ticket, err := app.Backoffice.Ticket(cmd.Context(), args[0])
			if err != nil {
				output.Error("Failed to fetch ticket: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(ticket)
			}

			output.Bold("%s  %s", ticket.Subject, output.StatusTag(ticket.Status))
			output.Printf("  Category: %s   Priority: %s\n", ticket.Category, ticket.Priority)
			output.Printf("  Opened:   %s\n", FormatDateTime(ticket.CreatedAt.Time))
			if ticket.AssignedTo != "" {
				output.Printf("  Assigned: %s\n", ticket.AssignedTo)
			}
			output.Println()
			output.Println(ticket.Description)

			for _, msg := range ticket.Messages {
				output.Println()
				who := msg.UserName
				if who == "" {
					who = msg.UserID
				}
				if msg.UserRole == models.RoleAdmin {
					who = output.Cyan(who + " (staff)")
				}
				output.Printf("%s  %s\n", output.BoldText(who), output.DimText(FormatDateTime(msg.CreatedAt.Time)))
				output.Println(msg.Message)
			}
			return nil
		},
	}
}

func newTicketReplyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reply <id>",
		Short: "Reply to a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			message, _ := cmd.Flags().GetString("message")
			if err := app.Backoffice.ReplyTicket(cmd.Context(), args[0], message); err != nil {
				output.Error("Failed to reply: %v", err)
				return err
			}
			output.Success("✓ Reply added to %s", args[0])
			return nil
		},
	}
	cmd.Flags().String("message", "", "reply text")
	return cmd
}

func newTicketCloseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "close <id>",
		Short: "Close a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAuth(); err != nil {
				output.Error("Not logged in. Run 'backoffice login' first.")
				return err
			}

			if err := app.Backoffice.CloseTicket(cmd.Context(), args[0]); err != nil {
				output.Error("Failed to close ticket: %v", err)
				return err
			}
			output.Success("✓ Ticket %s closed", args[0])
			return nil
		},
	}
}

func newTicketAdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Staff ticket operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "List every ticket in the system",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAdmin(); err != nil {
				output.Error("%v", err)
				return err
			}

			tickets, err := app.Backoffice.AllTickets(cmd.Context())
			if err != nil {
				output.Error("Failed to list tickets: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(tickets)
			}
			renderTicketTable(output, tickets)
			return nil
		},
	})

	assignCmd := &cobra.Command{
		Use:   "assign <id>",
		Short: "Assign a ticket to a staff member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAdmin(); err != nil {
				output.Error("%v", err)
				return err
			}

			assignee, _ := cmd.Flags().GetString("to")
			err := app.Backoffice.AssignTicket(cmd.Context(), args[0], models.TicketAssign{
				AssignedTo: assignee,
				Status:     models.TicketInProgress,
			})
			if err != nil {
				output.Error("Failed to assign ticket: %v", err)
				return err
			}
			output.Success("✓ Ticket %s assigned to %s", args[0], assignee)
			return nil
		},
	}
	assignCmd.Flags().String("to", "", "staff member id")
	cmd.AddCommand(assignCmd)

	replyCmd := &cobra.Command{
		Use:   "reply <id>",
		Short: "Reply to any ticket as staff",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := app.Session.RequireAdmin(); err != nil {
				output.Error("%v", err)
				return err
			}

			message, _ := cmd.Flags().GetString("message")
			if err := app.Backoffice.AdminReplyTicket(cmd.Context(), args[0], message); err != nil {
				output.Error("Failed to reply: %v", err)
				return err
			}
			output.Success("✓ Staff reply added to %s", args[0])
			return nil
		},
	}
	replyCmd.Flags().String("message", "", "reply text")
	cmd.AddCommand(replyCmd)

	return cmd
}

package backoffice

import (
	"context"
	"fmt"

	"mt5-backoffice/internal/models"
)

// CreateTicket opens a new support ticket.
func (s *Service) CreateTicket(ctx context.Context, req models.TicketCreate) (*models.Ticket, error) {
	if err := s.checkPayload(req); err != nil {
		return nil, err
	}
	if req.Priority == "" {
		req.Priority = "medium"
	}

	var ticket models.Ticket
	if err := s.client.Post(ctx, "/api/tickets/create", req, &ticket); err != nil {
		return nil, fmt.Errorf("creating ticket: %w", err)
	}
	s.logger.Info().
		Str("ticket_id", ticket.ID).
		Str("category", req.Category).
		Str("priority", req.Priority).
		Msg("Ticket created")
	return &ticket, nil
}

// Tickets lists the caller's tickets, newest first.
func (s *Service) Tickets(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := s.client.Get(ctx, "/api/tickets/list", &tickets); err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	return tickets, nil
}

// Ticket fetches one ticket with its full message thread.
func (s *Service) Ticket(ctx context.Context, id string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.client.Get(ctx, "/api/tickets/"+id, &ticket); err != nil {
		return nil, fmt.Errorf("fetching ticket %s: %w", id, err)
	}
	return &ticket, nil
}

// ReplyTicket appends a message to a ticket's thread.
func (s *Service) ReplyTicket(ctx context.Context, id, message string) error {
	payload := models.TicketMessage{Message: message}
	if err := s.checkPayload(payload); err != nil {
		return err
	}
	var ack statusMessage
	if err := s.client.Post(ctx, "/api/tickets/"+id+"/message", payload, &ack); err != nil {
		return fmt.Errorf("replying to ticket %s: %w", id, err)
	}
	return nil
}

// CloseTicket closes the caller's own ticket.
func (s *Service) CloseTicket(ctx context.Context, id string) error {
	var ack statusMessage
	if err := s.client.Put(ctx, "/api/tickets/"+id+"/close", nil, &ack); err != nil {
		return fmt.Errorf("closing ticket %s: %w", id, err)
	}
	s.logger.Info().Str("ticket_id", id).Msg("Ticket closed")
	return nil
}

// AllTickets lists every ticket in the system. Admin only.
func (s *Service) AllTickets(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := s.client.Get(ctx, "/api/tickets/admin/all", &tickets); err != nil {
		return nil, fmt.Errorf("listing all tickets: %w", err)
	}
	return tickets, nil
}

// AssignTicket assigns a ticket to a staff member. Admin only.
func (s *Service) AssignTicket(ctx context.Context, id string, assign models.TicketAssign) error {
	var ack statusMessage
	if err := s.client.Put(ctx, "/api/tickets/admin/"+id+"/assign", assign, &ack); err != nil {
		return fmt.Errorf("assigning ticket %s: %w", id, err)
	}
	s.logger.Info().
		Str("ticket_id", id).
		Str("assigned_to", assign.AssignedTo).
		Msg("Ticket assigned")
	return nil
}

// AdminReplyTicket appends a staff reply to any ticket. Admin only.
func (s *Service) AdminReplyTicket(ctx context.Context, id, message string) error {
	payload := models.TicketMessage{Message: message}
	if err := s.checkPayload(payload); err != nil {
		return err
	}
	var ack statusMessage
	if err := s.client.Post(ctx, "/api/tickets/admin/"+id+"/reply", payload, &ack); err != nil {
		return fmt.Errorf("replying to ticket %s: %w", id, err)
	}
	return nil
}

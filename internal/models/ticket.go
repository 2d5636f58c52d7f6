package models

// Ticket statuses.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketClosed     = "closed"
)

// TicketCreate is the payload for /api/tickets/create.
// Categories: technical, billing, trading, general.
// Priorities: low, medium, high, urgent.
type TicketCreate struct {
	Subject     string   `json:"subject" validate:"required,min=5,max=200"`
	Description string   `json:"description" validate:"required,min=10"`
	Category    string   `json:"category" validate:"required,oneof=technical billing trading general"`
	Priority    string   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	Attachments []string `json:"attachments,omitempty"`
}

// Ticket is a support ticket with its message thread.
type Ticket struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Subject     string          `json:"subject"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Priority    string          `json:"priority"`
	Status      string          `json:"status"`
	CreatedAt   Timestamp       `json:"created_at"`
	UpdatedAt   Timestamp       `json:"updated_at"`
	ClosedAt    *Timestamp      `json:"closed_at,omitempty"`
	AssignedTo  string          `json:"assigned_to,omitempty"`
	Messages    []TicketMessage `json:"messages"`
}

// TicketMessage is one entry in a ticket's thread.
type TicketMessage struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	UserName    string    `json:"user_name,omitempty"`
	UserRole    string    `json:"user_role,omitempty"`
	Message     string    `json:"message" validate:"required,min=1"`
	Attachments []string  `json:"attachments,omitempty"`
	CreatedAt   Timestamp `json:"created_at,omitempty"`
}

// TicketAssign is the admin payload to assign a ticket.
type TicketAssign struct {
	AssignedTo string `json:"assigned_to"`
	Status     string `json:"status,omitempty"`
}

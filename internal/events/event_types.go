package events

import (
	"time"

	"github.com/luca-defeo/progetto-zoo/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated   EventType = "ticket_created"
	EventTicketClaimed   EventType = "ticket_claimed"
	EventTicketCompleted EventType = "ticket_completed"
	EventTicketDeleted   EventType = "ticket_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id"`
	ActorID   *int64      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title           string               `json:"title"`
	Urgency         domain.TicketUrgency `json:"urgency"`
	RecommendedRole *domain.OperatorType `json:"recommended_role,omitempty"`
}

// TicketClaimedPayload payload.
type TicketClaimedPayload struct {
	AssignedUserID int64 `json:"assigned_user_id"`
}

// TicketCompletedPayload payload.
type TicketCompletedPayload struct {
	AssignedUserID int64                `json:"assigned_user_id"`
	Urgency        domain.TicketUrgency `json:"urgency"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	Title   string               `json:"title"`
	Urgency domain.TicketUrgency `json:"urgency"`
}

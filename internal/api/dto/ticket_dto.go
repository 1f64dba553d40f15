package dto

import "github.com/luca-defeo/progetto-zoo/internal/domain"

// CreateTicketRequest is the ticket creation payload. CreationDate uses the
// YYYY-MM-DD wire format and defaults to today when omitted.
type CreateTicketRequest struct {
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	TicketUrgency   domain.TicketUrgency `json:"ticketUrgency"`
	RecommendedRole *domain.OperatorType `json:"recommendedRole,omitempty"`
	CreationDate    *string              `json:"creationDate,omitempty"`
}

// UpdateTicketRequest is a field-level merge patch: omitted fields leave the
// stored ticket untouched.
type UpdateTicketRequest struct {
	Title           *string               `json:"title,omitempty"`
	Description     *string               `json:"description,omitempty"`
	TicketUrgency   *domain.TicketUrgency `json:"ticketUrgency,omitempty"`
	RecommendedRole *domain.OperatorType  `json:"recommendedRole,omitempty"`
	CreationDate    *string               `json:"creationDate,omitempty"`
	User            *int64                `json:"user,omitempty"`
}

// TicketResponse mirrors the stored ticket; User is the assignee id or null.
type TicketResponse struct {
	ID              int64                `json:"id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	TicketUrgency   domain.TicketUrgency `json:"ticketUrgency"`
	RecommendedRole *domain.OperatorType `json:"recommendedRole"`
	CreationDate    string               `json:"creationDate"`
	User            *int64               `json:"user"`
}

package domain

import (
	"fmt"
	"time"
)

// TicketUrgency enumerates urgency levels, ordered low to high.
type TicketUrgency string

const (
	UrgencyBassa TicketUrgency = "BASSO"
	UrgencyMedia TicketUrgency = "MEDIO"
	UrgencyAlta  TicketUrgency = "ALTO"
)

// ValidUrgency reports whether u is a known urgency value.
func ValidUrgency(u TicketUrgency) bool {
	switch u {
	case UrgencyBassa, UrgencyMedia, UrgencyAlta:
		return true
	}
	return false
}

// Ticket is a unit of maintenance work. A nil RecommendedRole marks the
// ticket as generic: visible to every operator type on the dashboard.
// A nil AssignedUserID means the ticket is still unassigned; assignment is
// set exactly once by the claim operation and cleared only by deletion.
type Ticket struct {
	ID              int64
	Title           string
	Description     string
	Urgency         TicketUrgency
	RecommendedRole *OperatorType
	CreationDate    time.Time
	AssignedUserID  *int64
}

// Assigned reports whether the ticket has been claimed.
func (t *Ticket) Assigned() bool {
	return t.AssignedUserID != nil
}

// Validate checks the fields required at creation time.
func (t *Ticket) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("title required")
	}
	if t.Description == "" {
		return fmt.Errorf("description required")
	}
	if !ValidUrgency(t.Urgency) {
		return fmt.Errorf("unknown urgency %q", t.Urgency)
	}
	return nil
}

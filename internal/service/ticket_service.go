package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/luca-defeo/progetto-zoo/internal/domain"
	"github.com/luca-defeo/progetto-zoo/internal/events"
	"github.com/luca-defeo/progetto-zoo/internal/repository"
	"github.com/luca-defeo/progetto-zoo/pkg/util/errorutil"
)

// TicketService governs the ticket lifecycle: unassigned tickets are claimed
// exactly once by an operator and resolved by destructive completion. The
// route gate filters callers by role before any of this runs; the service
// still re-validates ticket state, which is the source of truth for the
// single-assignment invariant.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title           string
	Description     string
	Urgency         domain.TicketUrgency
	RecommendedRole *domain.OperatorType
	CreationDate    *time.Time
}

// TicketPatch carries a field-level merge patch: nil fields are left
// untouched on the stored ticket.
type TicketPatch struct {
	Title           *string
	Description     *string
	Urgency         *domain.TicketUrgency
	RecommendedRole *domain.OperatorType
	CreationDate    *time.Time
	AssignedUserID  *int64
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create stores a new unassigned ticket. CreationDate defaults to today.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		Urgency:         input.Urgency,
		RecommendedRole: input.RecommendedRole,
	}
	if input.CreationDate != nil {
		ticket.CreationDate = *input.CreationDate
	} else {
		ticket.CreationDate = today()
	}
	if err := ticket.Validate(); err != nil {
		return nil, errorutil.NewInvalidInput(err.Error(), nil)
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, errorutil.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:           ticket.Title,
			Urgency:         ticket.Urgency,
			RecommendedRole: ticket.RecommendedRole,
		},
	})
	return ticket, nil
}

// GetByID fetches a single ticket.
func (s *TicketService) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapTicketErr(err, id)
	}
	return ticket, nil
}

// ListAll returns every ticket regardless of state.
func (s *TicketService) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return tickets, nil
}

// Dashboard returns the unassigned tickets visible to the caller. A typed
// operator sees tickets recommended for their type plus generic ones; every
// other caller, including an operator without a type, sees all unassigned
// tickets.
func (s *TicketService) Dashboard(ctx context.Context, caller *domain.User) ([]domain.Ticket, error) {
	var (
		tickets []domain.Ticket
		err     error
	)
	if caller.IsOperator() && caller.OperatorType != nil {
		tickets, err = s.tickets.ListUnassignedForOperatorType(ctx, *caller.OperatorType)
	} else {
		tickets, err = s.tickets.ListUnassigned(ctx)
	}
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return tickets, nil
}

// Mine returns the tickets currently assigned to the caller.
func (s *TicketService) Mine(ctx context.Context, caller *domain.User) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByAssignee(ctx, caller.ID)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return tickets, nil
}

// Claim assigns an unassigned ticket to the caller. The repository performs
// the check-then-set as one conditional update, so concurrent claims on the
// same id resolve with exactly one winner.
func (s *TicketService) Claim(ctx context.Context, ticketID int64, caller *domain.User) (*domain.Ticket, error) {
	ticket, err := s.tickets.Claim(ctx, ticketID, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketAssigned) {
			return nil, errorutil.NewAlreadyAssigned(map[string]any{"ticket_id": ticketID})
		}
		return nil, mapTicketErr(err, ticketID)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketClaimed,
		TicketID: ticket.ID,
		ActorID:  &caller.ID,
		Payload:  events.TicketClaimedPayload{AssignedUserID: caller.ID},
	})
	return ticket, nil
}

// Complete resolves a ticket assigned to the caller by deleting it and
// returning the last snapshot as a receipt. Anyone else gets Forbidden.
func (s *TicketService) Complete(ctx context.Context, ticketID int64, caller *domain.User) (*domain.Ticket, error) {
	snapshot, err := s.tickets.DeleteByAssignee(ctx, ticketID, caller.ID)
	if err == nil {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketCompleted,
			TicketID: snapshot.ID,
			ActorID:  &caller.ID,
			Payload: events.TicketCompletedPayload{
				AssignedUserID: caller.ID,
				Urgency:        snapshot.Urgency,
			},
		})
		return snapshot, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, errorutil.MapError(err)
	}
	// No row matched (id, caller): missing ticket or someone else's.
	if _, getErr := s.tickets.GetByID(ctx, ticketID); getErr != nil {
		return nil, mapTicketErr(getErr, ticketID)
	}
	return nil, errorutil.NewForbidden("ticket is not assigned to the caller")
}

// Update applies the non-nil patch fields to the ticket. A new assignee id
// must resolve to an existing user.
func (s *TicketService) Update(ctx context.Context, ticketID int64, patch TicketPatch) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, mapTicketErr(err, ticketID)
	}

	if patch.Title != nil {
		ticket.Title = *patch.Title
	}
	if patch.Description != nil {
		ticket.Description = *patch.Description
	}
	if patch.Urgency != nil {
		ticket.Urgency = *patch.Urgency
	}
	if patch.RecommendedRole != nil {
		ticket.RecommendedRole = patch.RecommendedRole
	}
	if patch.CreationDate != nil {
		ticket.CreationDate = *patch.CreationDate
	}
	if patch.AssignedUserID != nil {
		if _, err := s.users.GetByID(ctx, *patch.AssignedUserID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, errorutil.NewNotFound("user", map[string]any{"user_id": *patch.AssignedUserID})
			}
			return nil, errorutil.MapError(err)
		}
		ticket.AssignedUserID = patch.AssignedUserID
	}
	if err := ticket.Validate(); err != nil {
		return nil, errorutil.NewInvalidInput(err.Error(), nil)
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, mapTicketErr(err, ticketID)
	}
	return ticket, nil
}

// Delete removes a ticket unconditionally and returns the last snapshot.
func (s *TicketService) Delete(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	snapshot, err := s.tickets.Delete(ctx, ticketID)
	if err != nil {
		return nil, mapTicketErr(err, ticketID)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: snapshot.ID,
		Payload: events.TicketDeletedPayload{
			Title:   snapshot.Title,
			Urgency: snapshot.Urgency,
		},
	})
	return snapshot, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func mapTicketErr(err error, ticketID int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errorutil.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	return errorutil.MapError(err)
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

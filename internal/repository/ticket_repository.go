package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luca-defeo/progetto-zoo/internal/domain"
)

// ErrTicketAssigned reports a lost claim race: the row already has an assignee.
var ErrTicketAssigned = errors.New("ticket already assigned")

const ticketColumns = `id, title, description, ticket_urgency, recommended_role, creation_date, assigned_user_id`

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListAll(ctx context.Context) ([]domain.Ticket, error)
	ListUnassigned(ctx context.Context) ([]domain.Ticket, error)
	// ListUnassignedForOperatorType returns unassigned tickets whose
	// recommended role matches opType plus the generic ones with no
	// recommended role. A single predicate keeps the union duplicate-free.
	ListUnassignedForOperatorType(ctx context.Context, opType domain.OperatorType) ([]domain.Ticket, error)
	ListByAssignee(ctx context.Context, userID int64) ([]domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	// Claim sets the assignee in one conditional update so the check-then-set
	// cannot interleave with a concurrent claimant. Returns pgx.ErrNoRows when
	// the id does not exist and ErrTicketAssigned when the race was lost.
	Claim(ctx context.Context, ticketID, userID int64) (*domain.Ticket, error)
	// DeleteByAssignee removes the ticket only if it is assigned to userID,
	// returning the deleted row as a snapshot. pgx.ErrNoRows covers both a
	// missing id and a different assignee; callers disambiguate.
	DeleteByAssignee(ctx context.Context, ticketID, userID int64) (*domain.Ticket, error)
	Delete(ctx context.Context, id int64) (*domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, ticket_urgency, recommended_role, creation_date, assigned_user_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Urgency,
		ticket.RecommendedRole,
		ticket.CreationDate,
		ticket.AssignedUserID,
	).Scan(&ticket.ID)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	return scanTicketRow(r.pool.QueryRow(ctx, query, id))
}

func (r *ticketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets ORDER BY id`
	return r.list(ctx, query)
}

func (r *ticketRepository) ListUnassigned(ctx context.Context) ([]domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE assigned_user_id IS NULL ORDER BY id`
	return r.list(ctx, query)
}

func (r *ticketRepository) ListUnassignedForOperatorType(ctx context.Context, opType domain.OperatorType) ([]domain.Ticket, error) {
	const query = `
        SELECT ` + ticketColumns + ` FROM tickets
        WHERE assigned_user_id IS NULL AND (recommended_role = $1 OR recommended_role IS NULL)
        ORDER BY id`
	return r.list(ctx, query, opType)
}

func (r *ticketRepository) ListByAssignee(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE assigned_user_id=$1 ORDER BY id`
	return r.list(ctx, query, userID)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET title=$1, description=$2, ticket_urgency=$3, recommended_role=$4,
            creation_date=$5, assigned_user_id=$6
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Urgency,
		ticket.RecommendedRole,
		ticket.CreationDate,
		ticket.AssignedUserID,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) Claim(ctx context.Context, ticketID, userID int64) (*domain.Ticket, error) {
	const query = `
        UPDATE tickets SET assigned_user_id=$2
        WHERE id=$1 AND assigned_user_id IS NULL
        RETURNING ` + ticketColumns
	ticket, err := scanTicketRow(r.pool.QueryRow(ctx, query, ticketID, userID))
	if err == nil {
		return ticket, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tickets WHERE id=$1)`, ticketID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTicketAssigned
	}
	return nil, pgx.ErrNoRows
}

func (r *ticketRepository) DeleteByAssignee(ctx context.Context, ticketID, userID int64) (*domain.Ticket, error) {
	const query = `
        DELETE FROM tickets WHERE id=$1 AND assigned_user_id=$2
        RETURNING ` + ticketColumns
	return scanTicketRow(r.pool.QueryRow(ctx, query, ticketID, userID))
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `DELETE FROM tickets WHERE id=$1 RETURNING ` + ticketColumns
	return scanTicketRow(r.pool.QueryRow(ctx, query, id))
}

func (r *ticketRepository) list(ctx context.Context, query string, args ...any) ([]domain.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTicketRow(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Urgency,
		&ticket.RecommendedRole,
		&ticket.CreationDate,
		&ticket.AssignedUserID,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Urgency,
			&ticket.RecommendedRole,
			&ticket.CreationDate,
			&ticket.AssignedUserID,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

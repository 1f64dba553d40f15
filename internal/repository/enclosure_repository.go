package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luca-defeo/progetto-zoo/internal/domain"
)

const enclosureColumns = `id, name, area, description, user_id`

// EnclosureRepository encapsulates enclosure persistence.
type EnclosureRepository interface {
	// Create inserts the enclosure and points the listed animals at it
	// inside one transaction.
	Create(ctx context.Context, enclosure *domain.Enclosure, animalIDs []int64) error
	GetByID(ctx context.Context, id int64) (*domain.Enclosure, error)
	List(ctx context.Context) ([]domain.Enclosure, error)
	// Update rewrites the row and replaces its animal set: current residents
	// are detached, listed ones claimed, all within one transaction.
	Update(ctx context.Context, enclosure *domain.Enclosure, animalIDs []int64) error
	// Delete nulls the enclosure foreign key on resident animals before
	// removing the row. Never cascades.
	Delete(ctx context.Context, id int64) (*domain.Enclosure, error)
}

type enclosureRepository struct {
	pool *pgxpool.Pool
}

// NewEnclosureRepository returns a Postgres-backed implementation.
func NewEnclosureRepository(pool *pgxpool.Pool) EnclosureRepository {
	return &enclosureRepository{pool: pool}
}

func (r *enclosureRepository) Create(ctx context.Context, enclosure *domain.Enclosure, animalIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO enclosures (name, area, description, user_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id`
	if err := tx.QueryRow(ctx, query,
		enclosure.Name,
		enclosure.Area,
		enclosure.Description,
		enclosure.UserID,
	).Scan(&enclosure.ID); err != nil {
		return err
	}

	if len(animalIDs) > 0 {
		if _, err := tx.Exec(ctx, `UPDATE animals SET enclosure_id=$1 WHERE id = ANY($2)`, enclosure.ID, animalIDs); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *enclosureRepository) GetByID(ctx context.Context, id int64) (*domain.Enclosure, error) {
	const query = `SELECT ` + enclosureColumns + ` FROM enclosures WHERE id=$1`
	return scanEnclosureRow(r.pool.QueryRow(ctx, query, id))
}

func (r *enclosureRepository) List(ctx context.Context) ([]domain.Enclosure, error) {
	const query = `SELECT ` + enclosureColumns + ` FROM enclosures ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Enclosure
	for rows.Next() {
		var enclosure domain.Enclosure
		if err := rows.Scan(
			&enclosure.ID,
			&enclosure.Name,
			&enclosure.Area,
			&enclosure.Description,
			&enclosure.UserID,
		); err != nil {
			return nil, err
		}
		result = append(result, enclosure)
	}
	return result, rows.Err()
}

func (r *enclosureRepository) Update(ctx context.Context, enclosure *domain.Enclosure, animalIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE enclosures SET name=$1, area=$2, description=$3, user_id=$4
        WHERE id=$5`
	cmd, err := tx.Exec(ctx, query,
		enclosure.Name,
		enclosure.Area,
		enclosure.Description,
		enclosure.UserID,
		enclosure.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, `UPDATE animals SET enclosure_id=NULL WHERE enclosure_id=$1`, enclosure.ID); err != nil {
		return err
	}
	if len(animalIDs) > 0 {
		if _, err := tx.Exec(ctx, `UPDATE animals SET enclosure_id=$1 WHERE id = ANY($2)`, enclosure.ID, animalIDs); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *enclosureRepository) Delete(ctx context.Context, id int64) (*domain.Enclosure, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `UPDATE animals SET enclosure_id=NULL WHERE enclosure_id=$1`, id); err != nil {
		return nil, err
	}

	const query = `DELETE FROM enclosures WHERE id=$1 RETURNING ` + enclosureColumns
	enclosure, err := scanEnclosureRow(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return enclosure, nil
}

func scanEnclosureRow(row pgx.Row) (*domain.Enclosure, error) {
	var enclosure domain.Enclosure
	if err := row.Scan(
		&enclosure.ID,
		&enclosure.Name,
		&enclosure.Area,
		&enclosure.Description,
		&enclosure.UserID,
	); err != nil {
		return nil, err
	}
	return &enclosure, nil
}

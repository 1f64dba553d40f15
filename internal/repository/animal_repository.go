package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luca-defeo/progetto-zoo/internal/domain"
)

const animalColumns = `id, name, category, weight, user_id, enclosure_id`

// AnimalRepository encapsulates animal persistence.
type AnimalRepository interface {
	Create(ctx context.Context, animal *domain.Animal) error
	GetByID(ctx context.Context, id int64) (*domain.Animal, error)
	List(ctx context.Context) ([]domain.Animal, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Animal, error)
	ListByEnclosure(ctx context.Context, enclosureID int64) ([]domain.Animal, error)
	Update(ctx context.Context, animal *domain.Animal) error
	Delete(ctx context.Context, id int64) (*domain.Animal, error)
}

type animalRepository struct {
	pool *pgxpool.Pool
}

// NewAnimalRepository returns a Postgres-backed implementation.
func NewAnimalRepository(pool *pgxpool.Pool) AnimalRepository {
	return &animalRepository{pool: pool}
}

func (r *animalRepository) Create(ctx context.Context, animal *domain.Animal) error {
	const query = `
        INSERT INTO animals (name, category, weight, user_id, enclosure_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		animal.Name,
		animal.Category,
		animal.Weight,
		animal.UserID,
		animal.EnclosureID,
	).Scan(&animal.ID)
}

func (r *animalRepository) GetByID(ctx context.Context, id int64) (*domain.Animal, error) {
	const query = `SELECT ` + animalColumns + ` FROM animals WHERE id=$1`
	return scanAnimalRow(r.pool.QueryRow(ctx, query, id))
}

func (r *animalRepository) List(ctx context.Context) ([]domain.Animal, error) {
	const query = `SELECT ` + animalColumns + ` FROM animals ORDER BY id`
	return r.list(ctx, query)
}

func (r *animalRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Animal, error) {
	const query = `SELECT ` + animalColumns + ` FROM animals WHERE user_id=$1 ORDER BY id`
	return r.list(ctx, query, userID)
}

func (r *animalRepository) ListByEnclosure(ctx context.Context, enclosureID int64) ([]domain.Animal, error) {
	const query = `SELECT ` + animalColumns + ` FROM animals WHERE enclosure_id=$1 ORDER BY id`
	return r.list(ctx, query, enclosureID)
}

func (r *animalRepository) Update(ctx context.Context, animal *domain.Animal) error {
	const query = `
        UPDATE animals SET name=$1, category=$2, weight=$3, user_id=$4, enclosure_id=$5
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		animal.Name,
		animal.Category,
		animal.Weight,
		animal.UserID,
		animal.EnclosureID,
		animal.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *animalRepository) Delete(ctx context.Context, id int64) (*domain.Animal, error) {
	const query = `DELETE FROM animals WHERE id=$1 RETURNING ` + animalColumns
	return scanAnimalRow(r.pool.QueryRow(ctx, query, id))
}

func (r *animalRepository) list(ctx context.Context, query string, args ...any) ([]domain.Animal, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Animal
	for rows.Next() {
		var animal domain.Animal
		if err := rows.Scan(
			&animal.ID,
			&animal.Name,
			&animal.Category,
			&animal.Weight,
			&animal.UserID,
			&animal.EnclosureID,
		); err != nil {
			return nil, err
		}
		result = append(result, animal)
	}
	return result, rows.Err()
}

func scanAnimalRow(row pgx.Row) (*domain.Animal, error) {
	var animal domain.Animal
	if err := row.Scan(
		&animal.ID,
		&animal.Name,
		&animal.Category,
		&animal.Weight,
		&animal.UserID,
		&animal.EnclosureID,
	); err != nil {
		return nil, err
	}
	return &animal, nil
}

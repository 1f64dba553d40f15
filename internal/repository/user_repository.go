package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luca-defeo/progetto-zoo/internal/domain"
)

const userColumns = `id, first_name, last_name, username, password_hash, role, operator_type`

// UserRepository defines persistence access for staff accounts.
type UserRepository interface {
	// Create inserts the user and claims the listed animals and enclosures
	// inside one transaction. IDs that resolve to no row are ignored, the
	// way a bulk findAllById would drop them.
	Create(ctx context.Context, user *domain.User, animalIDs, enclosureIDs []int64) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Update rewrites the user row and replaces its owned animal and
	// enclosure sets: previous members are detached, listed ones claimed,
	// all within one transaction.
	Update(ctx context.Context, user *domain.User, animalIDs, enclosureIDs []int64) error
	// Delete nulls the user's foreign key on dependent animals, enclosures
	// and assigned tickets, then removes the row. Never cascades.
	Delete(ctx context.Context, id int64) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User, animalIDs, enclosureIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO users (first_name, last_name, username, password_hash, role, operator_type)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	if err := tx.QueryRow(ctx, query,
		user.Name,
		user.LastName,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.OperatorType,
	).Scan(&user.ID); err != nil {
		return err
	}

	if err := claimOwnedRows(ctx, tx, user.ID, animalIDs, enclosureIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUserRow(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username=$1`
	return scanUserRow(r.pool.QueryRow(ctx, query, username))
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.LastName,
			&user.Username,
			&user.PasswordHash,
			&user.Role,
			&user.OperatorType,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, user *domain.User, animalIDs, enclosureIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE users SET first_name=$1, last_name=$2, username=$3, password_hash=$4, role=$5, operator_type=$6
        WHERE id=$7`
	cmd, err := tx.Exec(ctx, query,
		user.Name,
		user.LastName,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.OperatorType,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, `UPDATE animals SET user_id=NULL WHERE user_id=$1`, user.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE enclosures SET user_id=NULL WHERE user_id=$1`, user.ID); err != nil {
		return err
	}
	if err := claimOwnedRows(ctx, tx, user.ID, animalIDs, enclosureIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *userRepository) Delete(ctx context.Context, id int64) (*domain.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `UPDATE animals SET user_id=NULL WHERE user_id=$1`, id); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `UPDATE enclosures SET user_id=NULL WHERE user_id=$1`, id); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `UPDATE tickets SET assigned_user_id=NULL WHERE assigned_user_id=$1`, id); err != nil {
		return nil, err
	}

	const query = `DELETE FROM users WHERE id=$1 RETURNING ` + userColumns
	user, err := scanUserRow(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

func claimOwnedRows(ctx context.Context, tx pgx.Tx, userID int64, animalIDs, enclosureIDs []int64) error {
	if len(animalIDs) > 0 {
		if _, err := tx.Exec(ctx, `UPDATE animals SET user_id=$1 WHERE id = ANY($2)`, userID, animalIDs); err != nil {
			return err
		}
	}
	if len(enclosureIDs) > 0 {
		if _, err := tx.Exec(ctx, `UPDATE enclosures SET user_id=$1 WHERE id = ANY($2)`, userID, enclosureIDs); err != nil {
			return err
		}
	}
	return nil
}

func scanUserRow(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.LastName,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.OperatorType,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

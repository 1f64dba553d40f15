package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/luca-defeo/progetto-zoo/internal/auth"
	"github.com/luca-defeo/progetto-zoo/internal/domain"
	"github.com/luca-defeo/progetto-zoo/internal/repository"
	"github.com/luca-defeo/progetto-zoo/pkg/util/errorutil"
)

// UserService maintains staff accounts and the user side of the animal and
// enclosure associations. Deleting a user detaches everything that pointed
// at it rather than cascading.
type UserService struct {
	users      repository.UserRepository
	animals    repository.AnimalRepository
	enclosures repository.EnclosureRepository
	bcryptCost int
}

// UserDependencies bundles repositories for the user service.
type UserDependencies struct {
	UserRepo      repository.UserRepository
	AnimalRepo    repository.AnimalRepository
	EnclosureRepo repository.EnclosureRepository
}

// UserInput describes creation and update payloads. Password is plaintext
// here and hashed before it reaches the repository; on update an empty
// password keeps the stored hash.
type UserInput struct {
	Name         string
	LastName     string
	Username     string
	Password     string
	Role         domain.Role
	OperatorType *domain.OperatorType
	AnimalIDs    []int64
	EnclosureIDs []int64
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies, bcryptCost int) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		animals:    deps.AnimalRepo,
		enclosures: deps.EnclosureRepo,
		bcryptCost: bcryptCost,
	}
}

// Create stores a new user and claims the listed animals and enclosures.
func (s *UserService) Create(ctx context.Context, input UserInput) (*domain.User, error) {
	user := &domain.User{
		Name:         input.Name,
		LastName:     input.LastName,
		Username:     input.Username,
		Role:         input.Role,
		OperatorType: input.OperatorType,
	}
	if !user.IsOperator() {
		user.OperatorType = nil
	}
	if err := user.Validate(); err != nil {
		return nil, errorutil.NewInvalidInput(err.Error(), nil)
	}
	if input.Password == "" {
		return nil, errorutil.NewInvalidInput("password required", nil)
	}
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	user.PasswordHash = hash

	if err := s.users.Create(ctx, user, input.AnimalIDs, input.EnclosureIDs); err != nil {
		return nil, errorutil.MapError(err)
	}
	return user, nil
}

// GetByID fetches a single user.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, errorutil.MapError(err)
	}
	return user, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return users, nil
}

// Animals returns the animals in the user's care.
func (s *UserService) Animals(ctx context.Context, userID int64) ([]domain.Animal, error) {
	animals, err := s.animals.ListByUser(ctx, userID)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return animals, nil
}

// Update rewrites the user and replaces its owned animal and enclosure sets.
// The operator type is cleared whenever the new role is not OPERATOR.
func (s *UserService) Update(ctx context.Context, id int64, input UserInput) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.LastName = input.LastName
	user.Username = input.Username
	user.Role = input.Role
	if user.IsOperator() {
		user.OperatorType = input.OperatorType
	} else {
		user.OperatorType = nil
	}
	if err := user.Validate(); err != nil {
		return nil, errorutil.NewInvalidInput(err.Error(), nil)
	}
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, errorutil.MapError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user, input.AnimalIDs, input.EnclosureIDs); err != nil {
		return nil, errorutil.MapError(err)
	}
	return user, nil
}

// Delete removes the user after nulling its foreign key on animals,
// enclosures and assigned tickets.
func (s *UserService) Delete(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, errorutil.MapError(err)
	}
	return user, nil
}

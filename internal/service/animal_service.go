package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/luca-defeo/progetto-zoo/internal/domain"
	"github.com/luca-defeo/progetto-zoo/internal/repository"
	"github.com/luca-defeo/progetto-zoo/pkg/util/errorutil"
)

// AnimalService maintains animals and both sides of their caretaker and
// enclosure associations.
type AnimalService struct {
	animals    repository.AnimalRepository
	users      repository.UserRepository
	enclosures repository.EnclosureRepository
}

// AnimalDependencies bundles repositories for the animal service.
type AnimalDependencies struct {
	AnimalRepo    repository.AnimalRepository
	UserRepo      repository.UserRepository
	EnclosureRepo repository.EnclosureRepository
}

// AnimalInput describes creation and update payloads. Caretaker and
// enclosure are mandatory associations.
type AnimalInput struct {
	Name        string
	Category    domain.AnimalCategory
	Weight      float64
	UserID      int64
	EnclosureID int64
}

// NewAnimalService constructs the service.
func NewAnimalService(deps AnimalDependencies) *AnimalService {
	return &AnimalService{
		animals:    deps.AnimalRepo,
		users:      deps.UserRepo,
		enclosures: deps.EnclosureRepo,
	}
}

// Create stores a new animal. Both referenced entities must resolve before
// anything is written, so a failed lookup leaves no partial row behind.
func (s *AnimalService) Create(ctx context.Context, input AnimalInput) (*domain.Animal, error) {
	if input.Name == "" {
		return nil, errorutil.NewInvalidInput("name required", nil)
	}
	if err := s.resolveAssociations(ctx, input.UserID, input.EnclosureID); err != nil {
		return nil, err
	}

	animal := &domain.Animal{
		Name:        input.Name,
		Category:    input.Category,
		Weight:      input.Weight,
		UserID:      &input.UserID,
		EnclosureID: &input.EnclosureID,
	}
	if err := s.animals.Create(ctx, animal); err != nil {
		return nil, errorutil.MapError(err)
	}
	return animal, nil
}

// GetByID fetches a single animal.
func (s *AnimalService) GetByID(ctx context.Context, id int64) (*domain.Animal, error) {
	animal, err := s.animals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("animal", map[string]any{"animal_id": id})
		}
		return nil, errorutil.MapError(err)
	}
	return animal, nil
}

// List returns all animals.
func (s *AnimalService) List(ctx context.Context) ([]domain.Animal, error) {
	animals, err := s.animals.List(ctx)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return animals, nil
}

// Update moves the animal to the given caretaker and enclosure and rewrites
// its own fields. The foreign keys carry both sides of the association, so
// one row update completes the move.
func (s *AnimalService) Update(ctx context.Context, id int64, input AnimalInput) (*domain.Animal, error) {
	animal, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.resolveAssociations(ctx, input.UserID, input.EnclosureID); err != nil {
		return nil, err
	}

	animal.Name = input.Name
	animal.Weight = input.Weight
	if input.Category != "" {
		animal.Category = input.Category
	}
	animal.UserID = &input.UserID
	animal.EnclosureID = &input.EnclosureID

	if err := s.animals.Update(ctx, animal); err != nil {
		return nil, errorutil.MapError(err)
	}
	return animal, nil
}

// Delete removes the animal, detaching it from caretaker and enclosure.
func (s *AnimalService) Delete(ctx context.Context, id int64) (*domain.Animal, error) {
	animal, err := s.animals.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("animal", map[string]any{"animal_id": id})
		}
		return nil, errorutil.MapError(err)
	}
	return animal, nil
}

func (s *AnimalService) resolveAssociations(ctx context.Context, userID, enclosureID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorutil.NewInvalidInput("no user with the given id", map[string]any{"user_id": userID})
		}
		return errorutil.MapError(err)
	}
	if _, err := s.enclosures.GetByID(ctx, enclosureID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorutil.NewInvalidInput("no enclosure with the given id", map[string]any{"enclosure_id": enclosureID})
		}
		return errorutil.MapError(err)
	}
	return nil
}

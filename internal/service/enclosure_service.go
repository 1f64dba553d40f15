package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/luca-defeo/progetto-zoo/internal/domain"
	"github.com/luca-defeo/progetto-zoo/internal/repository"
	"github.com/luca-defeo/progetto-zoo/pkg/util/errorutil"
)

// EnclosureService maintains enclosures and the enclosure side of the animal
// association. Deleting an enclosure detaches its animals, never deletes them.
type EnclosureService struct {
	enclosures repository.EnclosureRepository
	users      repository.UserRepository
	animals    repository.AnimalRepository
}

// EnclosureDependencies bundles repositories for the enclosure service.
type EnclosureDependencies struct {
	EnclosureRepo repository.EnclosureRepository
	UserRepo      repository.UserRepository
	AnimalRepo    repository.AnimalRepository
}

// EnclosureInput describes creation and update payloads.
type EnclosureInput struct {
	Name        string
	Area        float64
	Description string
	UserID      int64
	AnimalIDs   []int64
}

// NewEnclosureService constructs the service.
func NewEnclosureService(deps EnclosureDependencies) *EnclosureService {
	return &EnclosureService{
		enclosures: deps.EnclosureRepo,
		users:      deps.UserRepo,
		animals:    deps.AnimalRepo,
	}
}

// Create stores a new enclosure with the given caretaker and points the
// listed animals at it. The caretaker must resolve first; a failure aborts
// the whole operation.
func (s *EnclosureService) Create(ctx context.Context, input EnclosureInput) (*domain.Enclosure, error) {
	if input.Name == "" {
		return nil, errorutil.NewInvalidInput("name required", nil)
	}
	if err := s.resolveCaretaker(ctx, input.UserID); err != nil {
		return nil, err
	}

	enclosure := &domain.Enclosure{
		Name:        input.Name,
		Area:        input.Area,
		Description: input.Description,
		UserID:      &input.UserID,
	}
	if err := s.enclosures.Create(ctx, enclosure, input.AnimalIDs); err != nil {
		return nil, errorutil.MapError(err)
	}
	return enclosure, nil
}

// GetByID fetches a single enclosure.
func (s *EnclosureService) GetByID(ctx context.Context, id int64) (*domain.Enclosure, error) {
	enclosure, err := s.enclosures.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("enclosure", map[string]any{"enclosure_id": id})
		}
		return nil, errorutil.MapError(err)
	}
	return enclosure, nil
}

// List returns all enclosures.
func (s *EnclosureService) List(ctx context.Context) ([]domain.Enclosure, error) {
	enclosures, err := s.enclosures.List(ctx)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return enclosures, nil
}

// Animals returns the animals currently housed in the enclosure.
func (s *EnclosureService) Animals(ctx context.Context, enclosureID int64) ([]domain.Animal, error) {
	animals, err := s.animals.ListByEnclosure(ctx, enclosureID)
	if err != nil {
		return nil, errorutil.MapError(err)
	}
	return animals, nil
}

// Update rewrites the enclosure and replaces its animal set: the old
// residents are detached and the listed ones claimed in one transaction.
func (s *EnclosureService) Update(ctx context.Context, id int64, input EnclosureInput) (*domain.Enclosure, error) {
	enclosure, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.resolveCaretaker(ctx, input.UserID); err != nil {
		return nil, err
	}

	enclosure.Name = input.Name
	enclosure.Area = input.Area
	enclosure.Description = input.Description
	enclosure.UserID = &input.UserID

	if err := s.enclosures.Update(ctx, enclosure, input.AnimalIDs); err != nil {
		return nil, errorutil.MapError(err)
	}
	return enclosure, nil
}

// Delete removes the enclosure after nulling the foreign key on its animals.
func (s *EnclosureService) Delete(ctx context.Context, id int64) (*domain.Enclosure, error) {
	enclosure, err := s.enclosures.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorutil.NewNotFound("enclosure", map[string]any{"enclosure_id": id})
		}
		return nil, errorutil.MapError(err)
	}
	return enclosure, nil
}

func (s *EnclosureService) resolveCaretaker(ctx context.Context, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorutil.NewInvalidInput("no user with the given id", map[string]any{"user_id": userID})
		}
		return errorutil.MapError(err)
	}
	return nil
}

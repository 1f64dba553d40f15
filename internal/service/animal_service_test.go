package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luca-defeo/progetto-zoo/internal/domain"
	"github.com/luca-defeo/progetto-zoo/internal/service"
)

type animalFixture struct {
	animals    *fakeAnimalRepo
	users      *fakeUserRepo
	enclosures *fakeEnclosureRepo
	service    *service.AnimalService
}

func newAnimalFixture() *animalFixture {
	fx := &animalFixture{
		animals:    newFakeAnimalRepo(),
		users:      newFakeUserRepo(),
		enclosures: newFakeEnclosureRepo(),
	}
	fx.service = service.NewAnimalService(service.AnimalDependencies{
		AnimalRepo:    fx.animals,
		UserRepo:      fx.users,
		EnclosureRepo: fx.enclosures,
	})
	return fx
}

func (fx *animalFixture) seedUserAndEnclosure(t *testing.T) (int64, int64) {
	t.Helper()
	keeper := fx.users.add(domain.User{Username: "keeper", Role: domain.RoleOperator})
	enclosure := domain.Enclosure{Name: "savanna"}
	require.NoError(t, fx.enclosures.Create(context.Background(), &enclosure, nil))
	return keeper.ID, enclosure.ID
}

func TestAnimalServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with resolved associations", func(t *testing.T) {
		fx := newAnimalFixture()
		userID, enclosureID := fx.seedUserAndEnclosure(t)

		animal, err := fx.service.Create(ctx, service.AnimalInput{
			Name:        "Nala",
			Category:    domain.CategoryMammal,
			Weight:      120,
			UserID:      userID,
			EnclosureID: enclosureID,
		})
		require.NoError(t, err)
		assert.NotZero(t, animal.ID)
		require.NotNil(t, animal.UserID)
		assert.Equal(t, userID, *animal.UserID)
		require.NotNil(t, animal.EnclosureID)
		assert.Equal(t, enclosureID, *animal.EnclosureID)
	})

	t.Run("unknown caretaker writes nothing", func(t *testing.T) {
		fx := newAnimalFixture()
		_, enclosureID := fx.seedUserAndEnclosure(t)

		_, err := fx.service.Create(ctx, service.AnimalInput{
			Name:        "Ghostly",
			Category:    domain.CategoryMammal,
			UserID:      999,
			EnclosureID: enclosureID,
		})
		require.Error(t, err)
		assert.Equal(t, "INVALID_INPUT", errCode(err))

		stored, err := fx.animals.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("unknown enclosure writes nothing", func(t *testing.T) {
		fx := newAnimalFixture()
		userID, _ := fx.seedUserAndEnclosure(t)

		_, err := fx.service.Create(ctx, service.AnimalInput{
			Name:        "Homeless",
			Category:    domain.CategoryBird,
			UserID:      userID,
			EnclosureID: 999,
		})
		require.Error(t, err)
		assert.Equal(t, "INVALID_INPUT", errCode(err))

		stored, err := fx.animals.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("name is required", func(t *testing.T) {
		fx := newAnimalFixture()
		userID, enclosureID := fx.seedUserAndEnclosure(t)

		_, err := fx.service.Create(ctx, service.AnimalInput{
			UserID:      userID,
			EnclosureID: enclosureID,
		})
		require.Error(t, err)
		assert.Equal(t, "INVALID_INPUT", errCode(err))
	})
}

func TestAnimalServiceUpdate(t *testing.T) {
	ctx := context.Background()
	fx := newAnimalFixture()
	userID, enclosureID := fx.seedUserAndEnclosure(t)

	animal, err := fx.service.Create(ctx, service.AnimalInput{
		Name:        "Rex",
		Category:    domain.CategoryReptile,
		Weight:      40,
		UserID:      userID,
		EnclosureID: enclosureID,
	})
	require.NoError(t, err)

	t.Run("moves the animal to a new enclosure", func(t *testing.T) {
		other := domain.Enclosure{Name: "terrarium"}
		require.NoError(t, fx.enclosures.Create(ctx, &other, nil))

		updated, err := fx.service.Update(ctx, animal.ID, service.AnimalInput{
			Name:        "Rex",
			Category:    domain.CategoryReptile,
			Weight:      42,
			UserID:      userID,
			EnclosureID: other.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, other.ID, *updated.EnclosureID)
		assert.Equal(t, float64(42), updated.Weight)
	})

	t.Run("empty category keeps the stored one", func(t *testing.T) {
		updated, err := fx.service.Update(ctx, animal.ID, service.AnimalInput{
			Name:        "Rex",
			Weight:      42,
			UserID:      userID,
			EnclosureID: enclosureID,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryReptile, updated.Category)
	})

	t.Run("missing animal reports not found", func(t *testing.T) {
		_, err := fx.service.Update(ctx, 9999, service.AnimalInput{
			Name:        "Nobody",
			UserID:      userID,
			EnclosureID: enclosureID,
		})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", errCode(err))
	})
}

func TestAnimalServiceDelete(t *testing.T) {
	ctx := context.Background()
	fx := newAnimalFixture()
	userID, enclosureID := fx.seedUserAndEnclosure(t)

	animal, err := fx.service.Create(ctx, service.AnimalInput{
		Name:        "Dodo",
		Category:    domain.CategoryBird,
		UserID:      userID,
		EnclosureID: enclosureID,
	})
	require.NoError(t, err)

	snapshot, err := fx.service.Delete(ctx, animal.ID)
	require.NoError(t, err)
	assert.Equal(t, animal.ID, snapshot.ID)

	_, err = fx.service.GetByID(ctx, animal.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errCode(err))
}

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/luca-defeo/progetto-zoo/internal/auth"
	"github.com/luca-defeo/progetto-zoo/internal/domain"
	"github.com/luca-defeo/progetto-zoo/internal/service"
)

func newUserService() (*service.UserService, *fakeUserRepo) {
	users := newFakeUserRepo()
	svc := service.NewUserService(service.UserDependencies{
		UserRepo:      users,
		AnimalRepo:    newFakeAnimalRepo(),
		EnclosureRepo: newFakeEnclosureRepo(),
	}, bcrypt.MinCost)
	return svc, users
}

func TestUserServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password", func(t *testing.T) {
		svc, _ := newUserService()
		user, err := svc.Create(ctx, service.UserInput{
			Name:     "Ada",
			LastName: "Rossi",
			Username: "arossi",
			Password: "secret",
			Role:     domain.RoleManager,
		})
		require.NoError(t, err)
		assert.NotEqual(t, "secret", user.PasswordHash)
		assert.NoError(t, auth.ComparePassword(user.PasswordHash, "secret"))
	})

	t.Run("password is required", func(t *testing.T) {
		svc, _ := newUserService()
		_, err := svc.Create(ctx, service.UserInput{
			Username: "nopass",
			Role:     domain.RoleAdmin,
		})
		require.Error(t, err)
		assert.Equal(t, "INVALID_INPUT", errCode(err))
	})

	t.Run("operator type dropped for non-operators", func(t *testing.T) {
		svc, _ := newUserService()
		vet := domain.OperatorVeterinarian
		user, err := svc.Create(ctx, service.UserInput{
			Username:     "boss",
			Password:     "secret",
			Role:         domain.RoleAdmin,
			OperatorType: &vet,
		})
		require.NoError(t, err)
		assert.Nil(t, user.OperatorType)
	})

	t.Run("operator keeps its type", func(t *testing.T) {
		svc, _ := newUserService()
		guard := domain.OperatorSecurityGuard
		user, err := svc.Create(ctx, service.UserInput{
			Username:     "guard1",
			Password:     "secret",
			Role:         domain.RoleOperator,
			OperatorType: &guard,
		})
		require.NoError(t, err)
		require.NotNil(t, user.OperatorType)
		assert.Equal(t, guard, *user.OperatorType)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		svc, _ := newUserService()
		_, err := svc.Create(ctx, service.UserInput{
			Username: "odd",
			Password: "secret",
			Role:     "INTERN",
		})
		require.Error(t, err)
		assert.Equal(t, "INVALID_INPUT", errCode(err))
	})
}

func TestUserServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("empty password keeps the stored hash", func(t *testing.T) {
		svc, _ := newUserService()
		created, err := svc.Create(ctx, service.UserInput{
			Username: "stable",
			Password: "secret",
			Role:     domain.RoleManager,
		})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID, service.UserInput{
			Name:     "Renamed",
			Username: "stable",
			Role:     domain.RoleManager,
		})
		require.NoError(t, err)
		assert.Equal(t, created.PasswordHash, updated.PasswordHash)
		assert.Equal(t, "Renamed", updated.Name)
	})

	t.Run("demoting an operator clears its type", func(t *testing.T) {
		svc, _ := newUserService()
		keeper := domain.OperatorZookeeper
		created, err := svc.Create(ctx, service.UserInput{
			Username:     "promoted",
			Password:     "secret",
			Role:         domain.RoleOperator,
			OperatorType: &keeper,
		})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID, service.UserInput{
			Username: "promoted",
			Role:     domain.RoleManager,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.OperatorType)
	})

	t.Run("missing user reports not found", func(t *testing.T) {
		svc, _ := newUserService()
		_, err := svc.Update(ctx, 404, service.UserInput{Username: "x", Role: domain.RoleAdmin})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", errCode(err))
	})
}

func TestUserServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc, users := newUserService()

	created, err := svc.Create(ctx, service.UserInput{
		Username: "leaver",
		Password: "secret",
		Role:     domain.RoleOperator,
	})
	require.NoError(t, err)

	snapshot, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, snapshot.ID)

	_, err = users.GetByID(ctx, created.ID)
	assert.Error(t, err)

	_, err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errCode(err))
}

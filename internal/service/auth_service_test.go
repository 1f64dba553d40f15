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

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()

	hash, err := auth.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	stored := users.add(domain.User{Username: "gate", PasswordHash: hash, Role: domain.RoleAdmin})

	svc := service.NewAuthService(users)

	t.Run("valid credentials return the user", func(t *testing.T) {
		user, err := svc.Login(ctx, "gate", "secret")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		_, err := svc.Login(ctx, "gate", "wrong")
		assert.ErrorIs(t, err, service.ErrBadCredentials)
	})

	t.Run("unknown username fails the same way", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "secret")
		assert.ErrorIs(t, err, service.ErrBadCredentials)
	})
}

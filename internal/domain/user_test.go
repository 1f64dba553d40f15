package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luca-defeo/progetto-zoo/internal/domain"
)

func TestUserValidate(t *testing.T) {
	vet := domain.OperatorVeterinarian

	t.Run("operator with type", func(t *testing.T) {
		user := domain.User{Role: domain.RoleOperator, OperatorType: &vet}
		require.NoError(t, user.Validate())
	})

	t.Run("operator without type", func(t *testing.T) {
		user := domain.User{Role: domain.RoleOperator}
		require.NoError(t, user.Validate())
	})

	t.Run("type on non-operator role", func(t *testing.T) {
		user := domain.User{Role: domain.RoleAdmin, OperatorType: &vet}
		assert.Error(t, user.Validate())
	})

	t.Run("unknown role", func(t *testing.T) {
		user := domain.User{Role: "SUPERVISOR"}
		assert.Error(t, user.Validate())
	})

	t.Run("unknown operator type", func(t *testing.T) {
		bogus := domain.OperatorType("JANITOR")
		user := domain.User{Role: domain.RoleOperator, OperatorType: &bogus}
		assert.Error(t, user.Validate())
	})
}

func TestUserHasAuthority(t *testing.T) {
	user := domain.User{Role: domain.RoleManager}

	assert.True(t, user.HasAuthority(domain.RoleAdmin, domain.RoleManager))
	assert.False(t, user.HasAuthority(domain.RoleAdmin))
	assert.False(t, user.HasAuthority())
}

func TestUserIsOperator(t *testing.T) {
	assert.True(t, (&domain.User{Role: domain.RoleOperator}).IsOperator())
	assert.False(t, (&domain.User{Role: domain.RoleAdmin}).IsOperator())
}

package errorutil_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luca-defeo/progetto-zoo/pkg/util/errorutil"
)

func TestDomainErrorConstructors(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{errorutil.NewInvalidInput("bad", nil), "INVALID_INPUT", http.StatusBadRequest},
		{errorutil.NewNotFound("ticket", nil), "NOT_FOUND", http.StatusNotFound},
		{errorutil.NewAlreadyAssigned(nil), "ALREADY_ASSIGNED", http.StatusBadRequest},
		{errorutil.NewUnauthorized("who"), "UNAUTHORIZED", http.StatusUnauthorized},
		{errorutil.NewForbidden("no"), "FORBIDDEN", http.StatusForbidden},
		{errorutil.NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		domainErr := errorutil.ToDomainError(tc.err)
		assert.Equal(t, tc.code, domainErr.Code)
		assert.Equal(t, tc.status, domainErr.HTTPStatus)
	}
}

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, errorutil.ToDomainError(nil))
	})

	t.Run("plain errors become internal", func(t *testing.T) {
		domainErr := errorutil.ToDomainError(errors.New("pool closed"))
		require.NotNil(t, domainErr)
		assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
		assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	})

	t.Run("wrapped domain errors are unwrapped", func(t *testing.T) {
		inner := errorutil.NewNotFound("animal", nil)
		wrapped := fmt.Errorf("lookup: %w", inner)
		domainErr := errorutil.ToDomainError(wrapped)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := errorutil.NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
}

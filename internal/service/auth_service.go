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

// ErrBadCredentials reports a failed username/password check. The login
// handler turns it into a 400 with a generic message, matching the public
// login contract rather than the 401 used on protected routes.
var ErrBadCredentials = errors.New("invalid username or password")

// AuthService validates credentials. No session or token state is kept;
// every protected request re-authenticates through the gate.
type AuthService struct {
	users repository.UserRepository
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Login checks the username/password pair and returns the matching user.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBadCredentials
		}
		return nil, errorutil.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}

package auth

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/luca-defeo/progetto-zoo/internal/domain"
	"github.com/luca-defeo/progetto-zoo/internal/repository"
	"github.com/luca-defeo/progetto-zoo/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Gate authenticates each request against the users table (stateless HTTP
// Basic, no token issuance) and enforces the route rule table before any
// handler runs.
type Gate struct {
	users repository.UserRepository
	rules []RouteRule
}

// NewGate constructs the middleware.
func NewGate(users repository.UserRepository, rules []RouteRule) *Gate {
	return &Gate{users: users, rules: rules}
}

// Handle resolves the caller's credentials and checks route authorization.
// Missing or bad credentials yield 401, a wrong role 403; the distinction is
// never collapsed.
func (g *Gate) Handle(c *fiber.Ctx) error {
	rule := MatchRule(g.rules, c.Method(), c.Path())
	if rule.Public {
		return c.Next()
	}

	username, password, ok := basicCredentials(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return errorutil.NewUnauthorized("missing or malformed authorization header")
	}

	user, err := g.users.GetByUsername(c.UserContext(), username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorutil.NewUnauthorized("invalid credentials")
		}
		return errorutil.MapError(err)
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return errorutil.NewUnauthorized("invalid credentials")
	}

	if len(rule.Roles) > 0 && !user.HasAuthority(rule.Roles...) {
		return errorutil.NewForbidden("insufficient role")
	}

	c.Locals(principalKey, user)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated user.
func PrincipalFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}

func basicCredentials(header string) (username, password string, ok bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Basic") {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", false
	}
	username, password, ok = strings.Cut(string(decoded), ":")
	return username, password, ok
}

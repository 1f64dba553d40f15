package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/luca-defeo/progetto-zoo/internal/api/dto"
	"github.com/luca-defeo/progetto-zoo/internal/service"
	"github.com/luca-defeo/progetto-zoo/pkg/util/errorutil"
)

// AuthHandler serves the public credential-check endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /api/auth/login. A bad pair answers 400 with a generic message;
// nothing distinguishes an unknown username from a wrong password.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewInvalidInput("invalid payload", nil)
	}

	user, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.LoginResponse{
				Success: false,
				Message: "invalid username or password",
			})
		}
		return err
	}

	return c.JSON(dto.LoginResponse{
		Success: true,
		Message: "login successful",
		User: &dto.UserSummary{
			ID:           user.ID,
			Username:     user.Username,
			Name:         user.Name,
			LastName:     user.LastName,
			Role:         user.Role,
			OperatorType: user.OperatorType,
		},
	})
}

// Logout POST /api/auth/logout. Authentication is stateless, so there is
// nothing to invalidate; the endpoint acknowledges for client symmetry.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(dto.LoginResponse{
		Success: true,
		Message: "logout successful",
	})
}

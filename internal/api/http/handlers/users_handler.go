package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/luca-defeo/progetto-zoo/internal/api/dto"
	"github.com/luca-defeo/progetto-zoo/internal/domain"
	"github.com/luca-defeo/progetto-zoo/internal/service"
	"github.com/luca-defeo/progetto-zoo/pkg/util/errorutil"
)

// UsersHandler exposes staff account management.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// Create POST /api/user/add.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewInvalidInput("invalid payload", nil)
	}

	user, err := h.service.Create(c.UserContext(), userInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(h.userResponse(c, user))
}

// Get GET /api/user/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(h.userResponse(c, user))
}

// List GET /api/user/list.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, h.userResponse(c, &users[i]))
	}
	return c.JSON(items)
}

// Animals GET /api/user/:id/animals. The animals in the user's care.
func (h *UsersHandler) Animals(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if _, err := h.service.GetByID(c.UserContext(), id); err != nil {
		return err
	}
	animals, err := h.service.Animals(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(animalResponses(animals))
}

// Update PUT /api/user/update/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewInvalidInput("invalid payload", nil)
	}

	user, err := h.service.Update(c.UserContext(), id, userInput(req))
	if err != nil {
		return err
	}
	return c.JSON(h.userResponse(c, user))
}

// Delete DELETE /api/user/delete/:id. Owned animals, enclosures and assigned
// tickets are detached, not removed.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		LastName:     user.LastName,
		Username:     user.Username,
		Role:         user.Role,
		OperatorType: user.OperatorType,
		Animals:      []dto.AnimalResponse{},
	})
}

func userInput(req dto.UserRequest) service.UserInput {
	return service.UserInput{
		Name:         req.Name,
		LastName:     req.LastName,
		Username:     req.Username,
		Password:     req.Password,
		Role:         req.Role,
		OperatorType: req.OperatorType,
		AnimalIDs:    req.Animals,
		EnclosureIDs: req.Enclosures,
	}
}

func (h *UsersHandler) userResponse(c *fiber.Ctx, user *domain.User) dto.UserResponse {
	animals, err := h.service.Animals(c.UserContext(), user.ID)
	if err != nil {
		animals = nil
	}
	return dto.UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		LastName:     user.LastName,
		Username:     user.Username,
		Role:         user.Role,
		OperatorType: user.OperatorType,
		Animals:      animalResponses(animals),
	}
}

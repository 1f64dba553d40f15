package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/luca-defeo/progetto-zoo/internal/api/dto"
	"github.com/luca-defeo/progetto-zoo/internal/domain"
	"github.com/luca-defeo/progetto-zoo/internal/service"
	"github.com/luca-defeo/progetto-zoo/pkg/util/errorutil"
)

// AnimalsHandler exposes animal record management.
type AnimalsHandler struct {
	service *service.AnimalService
}

// NewAnimalsHandler constructs handler.
func NewAnimalsHandler(animalService *service.AnimalService) *AnimalsHandler {
	return &AnimalsHandler{service: animalService}
}

// Create POST /api/animal/add.
func (h *AnimalsHandler) Create(c *fiber.Ctx) error {
	var req dto.AnimalRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewInvalidInput("invalid payload", nil)
	}

	animal, err := h.service.Create(c.UserContext(), animalInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(animalResponse(animal))
}

// Get GET /api/animal/:id.
func (h *AnimalsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	animal, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(animalResponse(animal))
}

// List GET /api/animal/list.
func (h *AnimalsHandler) List(c *fiber.Ctx) error {
	animals, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(animalResponses(animals))
}

// Update PUT /api/animal/update/:id.
func (h *AnimalsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.AnimalRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewInvalidInput("invalid payload", nil)
	}

	animal, err := h.service.Update(c.UserContext(), id, animalInput(req))
	if err != nil {
		return err
	}
	return c.JSON(animalResponse(animal))
}

// Delete DELETE /api/animal/delete/:id.
func (h *AnimalsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	animal, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(animalResponse(animal))
}

func animalInput(req dto.AnimalRequest) service.AnimalInput {
	return service.AnimalInput{
		Name:        req.Name,
		Category:    req.Category,
		Weight:      req.Weight,
		UserID:      req.User,
		EnclosureID: req.Enclosure,
	}
}

func animalResponse(animal *domain.Animal) dto.AnimalResponse {
	return dto.AnimalResponse{
		ID:        animal.ID,
		Name:      animal.Name,
		Category:  animal.Category,
		Weight:    animal.Weight,
		User:      animal.UserID,
		Enclosure: animal.EnclosureID,
	}
}

func animalResponses(animals []domain.Animal) []dto.AnimalResponse {
	items := make([]dto.AnimalResponse, 0, len(animals))
	for i := range animals {
		items = append(items, animalResponse(&animals[i]))
	}
	return items
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/luca-defeo/progetto-zoo/internal/api/dto"
	"github.com/luca-defeo/progetto-zoo/internal/domain"
	"github.com/luca-defeo/progetto-zoo/internal/service"
	"github.com/luca-defeo/progetto-zoo/pkg/util/errorutil"
)

// EnclosuresHandler exposes enclosure record management.
type EnclosuresHandler struct {
	service *service.EnclosureService
}

// NewEnclosuresHandler constructs handler.
func NewEnclosuresHandler(enclosureService *service.EnclosureService) *EnclosuresHandler {
	return &EnclosuresHandler{service: enclosureService}
}

// Create POST /api/enclosure/add.
func (h *EnclosuresHandler) Create(c *fiber.Ctx) error {
	var req dto.EnclosureRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewInvalidInput("invalid payload", nil)
	}

	enclosure, err := h.service.Create(c.UserContext(), enclosureInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(h.enclosureResponse(c, enclosure))
}

// Get GET /api/enclosure/:id.
func (h *EnclosuresHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	enclosure, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(h.enclosureResponse(c, enclosure))
}

// List GET /api/enclosure/list.
func (h *EnclosuresHandler) List(c *fiber.Ctx) error {
	enclosures, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.EnclosureResponse, 0, len(enclosures))
	for i := range enclosures {
		items = append(items, h.enclosureResponse(c, &enclosures[i]))
	}
	return c.JSON(items)
}

// Animals GET /api/enclosure/:id/animals. The current residents.
func (h *EnclosuresHandler) Animals(c *fiber.Ctx) error {
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

// Update PUT /api/enclosure/update/:id.
func (h *EnclosuresHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.EnclosureRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewInvalidInput("invalid payload", nil)
	}

	enclosure, err := h.service.Update(c.UserContext(), id, enclosureInput(req))
	if err != nil {
		return err
	}
	return c.JSON(h.enclosureResponse(c, enclosure))
}

// Delete DELETE /api/enclosure/delete/:id. Resident animals are detached, not
// removed.
func (h *EnclosuresHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	enclosure, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.EnclosureResponse{
		ID:          enclosure.ID,
		Name:        enclosure.Name,
		Area:        enclosure.Area,
		Description: enclosure.Description,
		User:        enclosure.UserID,
		Animals:     []dto.AnimalResponse{},
	})
}

func enclosureInput(req dto.EnclosureRequest) service.EnclosureInput {
	return service.EnclosureInput{
		Name:        req.Name,
		Area:        req.Area,
		Description: req.Description,
		UserID:      req.User,
		AnimalIDs:   req.Animals,
	}
}

func (h *EnclosuresHandler) enclosureResponse(c *fiber.Ctx, enclosure *domain.Enclosure) dto.EnclosureResponse {
	animals, err := h.service.Animals(c.UserContext(), enclosure.ID)
	if err != nil {
		animals = nil
	}
	return dto.EnclosureResponse{
		ID:          enclosure.ID,
		Name:        enclosure.Name,
		Area:        enclosure.Area,
		Description: enclosure.Description,
		User:        enclosure.UserID,
		Animals:     animalResponses(animals),
	}
}

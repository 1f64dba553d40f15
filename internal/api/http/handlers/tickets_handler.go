package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/luca-defeo/progetto-zoo/internal/api/dto"
	"github.com/luca-defeo/progetto-zoo/internal/auth"
	"github.com/luca-defeo/progetto-zoo/internal/domain"
	"github.com/luca-defeo/progetto-zoo/internal/service"
	"github.com/luca-defeo/progetto-zoo/pkg/util/errorutil"
)

const dateLayout = "2006-01-02"

// TicketsHandler exposes the ticket workflow endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /api/ticket/add.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewInvalidInput("invalid payload", nil)
	}

	input := service.TicketCreateInput{
		Title:           req.Title,
		Description:     req.Description,
		Urgency:         req.TicketUrgency,
		RecommendedRole: req.RecommendedRole,
	}
	if req.CreationDate != nil {
		date, err := time.Parse(dateLayout, *req.CreationDate)
		if err != nil {
			return errorutil.NewInvalidInput("creationDate must be YYYY-MM-DD", nil)
		}
		input.CreationDate = &date
	}

	ticket, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(ticketResponse(ticket))
}

// Get GET /api/ticket/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// Dashboard GET /api/ticket/dashboard. Unassigned tickets filtered by the
// caller's operator type.
func (h *TicketsHandler) Dashboard(c *fiber.Ctx) error {
	caller, ok := auth.PrincipalFromContext(c)
	if !ok {
		return errorutil.NewUnauthorized("authentication required")
	}
	tickets, err := h.service.Dashboard(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponses(tickets))
}

// MyTickets GET /api/ticket/my-tickets.
func (h *TicketsHandler) MyTickets(c *fiber.Ctx) error {
	caller, ok := auth.PrincipalFromContext(c)
	if !ok {
		return errorutil.NewUnauthorized("authentication required")
	}
	tickets, err := h.service.Mine(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponses(tickets))
}

// Accept POST /api/ticket/:id/accept. Both a missing ticket and a lost claim
// race answer 400, matching the original accept contract.
func (h *TicketsHandler) Accept(c *fiber.Ctx) error {
	caller, ok := auth.PrincipalFromContext(c)
	if !ok {
		return errorutil.NewUnauthorized("authentication required")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.Claim(c.UserContext(), id, caller)
	if err != nil {
		domainErr := errorutil.ToDomainError(err)
		if domainErr.Code == "NOT_FOUND" {
			return errorutil.NewDomainError(domainErr.Code, domainErr.Message, fiber.StatusBadRequest, domainErr.Details)
		}
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// Complete POST /api/ticket/:id/complete. Assignee-only; the ticket is
// deleted and its last snapshot returned as a receipt.
func (h *TicketsHandler) Complete(c *fiber.Ctx) error {
	caller, ok := auth.PrincipalFromContext(c)
	if !ok {
		return errorutil.NewUnauthorized("authentication required")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	snapshot, err := h.service.Complete(c.UserContext(), id, caller)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(snapshot))
}

// ListAll GET /api/ticket/all.
func (h *TicketsHandler) ListAll(c *fiber.Ctx) error {
	tickets, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(ticketResponses(tickets))
}

// Update PUT /api/ticket/:id. Applies only the supplied fields.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewInvalidInput("invalid payload", nil)
	}

	patch := service.TicketPatch{
		Title:           req.Title,
		Description:     req.Description,
		Urgency:         req.TicketUrgency,
		RecommendedRole: req.RecommendedRole,
		AssignedUserID:  req.User,
	}
	if req.CreationDate != nil {
		date, err := time.Parse(dateLayout, *req.CreationDate)
		if err != nil {
			return errorutil.NewInvalidInput("creationDate must be YYYY-MM-DD", nil)
		}
		patch.CreationDate = &date
	}

	ticket, err := h.service.Update(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// Delete DELETE /api/ticket/:id. Administrative removal with snapshot receipt.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	snapshot, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(snapshot))
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, errorutil.NewInvalidInput("invalid id", nil)
	}
	return id, nil
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:              ticket.ID,
		Title:           ticket.Title,
		Description:     ticket.Description,
		TicketUrgency:   ticket.Urgency,
		RecommendedRole: ticket.RecommendedRole,
		CreationDate:    ticket.CreationDate.Format(dateLayout),
		User:            ticket.AssignedUserID,
	}
}

func ticketResponses(tickets []domain.Ticket) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return items
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/suportehub/chamados-service/internal/api/dto"
	"github.com/suportehub/chamados-service/internal/auth"
	"github.com/suportehub/chamados-service/internal/domain"
	"github.com/suportehub/chamados-service/internal/service"
	apperrors "github.com/suportehub/chamados-service/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// List GET /chamados.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}

	filter := service.TicketListFilter{Page: 1}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.TicketStatus(statusStr)
		filter.Status = &status
	}
	if priorityStr := c.Query("prioridade"); priorityStr != "" {
		priority := domain.TicketPriority(priorityStr)
		filter.Priority = &priority
	}
	if sectorStr := c.Query("setor_id"); sectorStr != "" {
		sectorID, err := strconv.ParseInt(sectorStr, 10, 64)
		if err != nil {
			return apperrors.NewUnprocessable("validation failed", map[string]any{"setor_id": "must be an integer"})
		}
		filter.SectorID = &sectorID
	}
	if pageStr := c.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filter.Page = page
		}
	}

	items, meta, err := h.service.List(c.Context(), principal.User.ID, filter)
	if err != nil {
		return err
	}

	data := make([]dto.TicketResponse, 0, len(items))
	for i := range items {
		data = append(data, ticketResponse(&items[i]))
	}
	return c.JSON(dto.PageResponse{Data: data, Meta: meta})
}

// Create POST /chamados.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item, err := h.service.Create(c.Context(), principal.User.ID, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		SectorID:    req.SectorID,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(ticketResponse(item))
}

// Get GET /chamados/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "chamado")
	if err != nil {
		return err
	}
	item, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(item))
}

// Update PUT /chamados/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	id, err := idParam(c, "chamado")
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item, err := h.service.Update(c.Context(), principal.User.ID, id, service.TicketUpdateInput{
		Status:   req.Status,
		Priority: req.Priority,
		Notes:    req.Notes,
		SectorID: req.SectorID,
	})
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(item))
}

// Transfer POST /chamados/:id/transferir.
func (h *TicketsHandler) Transfer(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	id, err := idParam(c, "chamado")
	if err != nil {
		return err
	}
	var req dto.TransferTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item, err := h.service.Transfer(c.Context(), principal.User.ID, id, service.TransferInput{
		SectorID: req.SectorID,
		Notes:    req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(item))
}

// Resolve POST /chamados/:id/resolver.
func (h *TicketsHandler) Resolve(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	id, err := idParam(c, "chamado")
	if err != nil {
		return err
	}
	var req dto.ResolveTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	item, err := h.service.Resolve(c.Context(), principal.User.ID, id, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(item))
}

// History GET /chamados/:id/historico.
func (h *TicketsHandler) History(c *fiber.Ctx) error {
	id, err := idParam(c, "chamado")
	if err != nil {
		return err
	}
	entries, err := h.service.History(c.Context(), id)
	if err != nil {
		return err
	}
	data := make([]dto.HistoryResponse, 0, len(entries))
	for _, entry := range entries {
		data = append(data, historyResponse(entry))
	}
	return c.JSON(data)
}

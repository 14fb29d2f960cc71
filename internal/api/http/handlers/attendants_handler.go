package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/suportehub/chamados-service/internal/api/dto"
	"github.com/suportehub/chamados-service/internal/service"
	apperrors "github.com/suportehub/chamados-service/pkg/util/errorutil"
)

// AttendantsHandler exposes the attendant CRUD with its embedded
// sector-assignment side effect.
type AttendantsHandler struct {
	attendants *service.AttendantService
}

// NewAttendantsHandler constructs handler.
func NewAttendantsHandler(attendantService *service.AttendantService) *AttendantsHandler {
	return &AttendantsHandler{attendants: attendantService}
}

func attendantInput(req dto.AttendantRequest) service.AttendantInput {
	input := service.AttendantInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		UserID:   req.UserID,
		SectorID: req.SectorID,
	}
	if req.IsManager != nil {
		input.IsManager = *req.IsManager
	}
	return input
}

// List GET /atendentes.
func (h *AttendantsHandler) List(c *fiber.Ctx) error {
	items, err := h.attendants.ListAttendants(c.Context())
	if err != nil {
		return err
	}
	data := make([]dto.AttendantResponse, 0, len(items))
	for i := range items {
		data = append(data, *attendantResponse(&items[i]))
	}
	return c.JSON(data)
}

// Get GET /atendentes/:id.
func (h *AttendantsHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "atendente")
	if err != nil {
		return err
	}
	attendant, err := h.attendants.GetAttendant(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(attendantResponse(attendant))
}

// Create POST /atendentes.
func (h *AttendantsHandler) Create(c *fiber.Ctx) error {
	var req dto.AttendantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	attendant, err := h.attendants.CreateAttendant(c.Context(), attendantInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(attendantResponse(attendant))
}

// Update PUT /atendentes/:id.
func (h *AttendantsHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "atendente")
	if err != nil {
		return err
	}
	var req dto.AttendantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	attendant, err := h.attendants.UpdateAttendant(c.Context(), id, attendantInput(req))
	if err != nil {
		return err
	}
	return c.JSON(attendantResponse(attendant))
}

// Delete DELETE /atendentes/:id.
func (h *AttendantsHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "atendente")
	if err != nil {
		return err
	}
	if err := h.attendants.DeleteAttendant(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/suportehub/chamados-service/internal/api/dto"
	"github.com/suportehub/chamados-service/internal/service"
	apperrors "github.com/suportehub/chamados-service/pkg/util/errorutil"
)

// SectorAttendantsHandler exposes the direct sector-attendant assignment CRUD.
type SectorAttendantsHandler struct {
	attendants *service.AttendantService
}

// NewSectorAttendantsHandler constructs handler.
func NewSectorAttendantsHandler(attendantService *service.AttendantService) *SectorAttendantsHandler {
	return &SectorAttendantsHandler{attendants: attendantService}
}

func assignmentInput(req dto.AssignmentRequest) (service.AssignmentInput, error) {
	fields := map[string]any{}
	if req.SectorID == nil {
		fields["setor_id"] = "required"
	}
	if req.AttendantID == nil {
		fields["atendente_id"] = "required"
	}
	if len(fields) > 0 {
		return service.AssignmentInput{}, apperrors.NewUnprocessable("validation failed", fields)
	}
	input := service.AssignmentInput{
		SectorID:    *req.SectorID,
		AttendantID: *req.AttendantID,
	}
	if req.IsManager != nil {
		input.IsManager = *req.IsManager
	}
	return input, nil
}

// List GET /setores_atendentes.
func (h *SectorAttendantsHandler) List(c *fiber.Ctx) error {
	items, err := h.attendants.ListAssignments(c.Context())
	if err != nil {
		return err
	}
	data := make([]dto.AssignmentResponse, 0, len(items))
	for i := range items {
		data = append(data, assignmentResponse(&items[i]))
	}
	return c.JSON(data)
}

// Get GET /setores_atendentes/:id.
func (h *SectorAttendantsHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "setor_atendente")
	if err != nil {
		return err
	}
	item, err := h.attendants.GetAssignment(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(assignmentResponse(item))
}

// Create POST /setores_atendentes.
func (h *SectorAttendantsHandler) Create(c *fiber.Ctx) error {
	var req dto.AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input, err := assignmentInput(req)
	if err != nil {
		return err
	}
	item, err := h.attendants.CreateAssignment(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(assignmentResponse(item))
}

// Update PUT /setores_atendentes/:id.
func (h *SectorAttendantsHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "setor_atendente")
	if err != nil {
		return err
	}
	var req dto.AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input, err := assignmentInput(req)
	if err != nil {
		return err
	}
	item, err := h.attendants.UpdateAssignment(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(assignmentResponse(item))
}

// Delete DELETE /setores_atendentes/:id.
func (h *SectorAttendantsHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "setor_atendente")
	if err != nil {
		return err
	}
	if err := h.attendants.DeleteAssignment(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

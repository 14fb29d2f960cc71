package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/suportehub/chamados-service/internal/api/dto"
	"github.com/suportehub/chamados-service/internal/service"
	apperrors "github.com/suportehub/chamados-service/pkg/util/errorutil"
)

// CostCentersHandler exposes the cost center CRUD.
type CostCentersHandler struct {
	directory *service.DirectoryService
}

// NewCostCentersHandler constructs handler.
func NewCostCentersHandler(directory *service.DirectoryService) *CostCentersHandler {
	return &CostCentersHandler{directory: directory}
}

// List GET /centros_de_custo.
func (h *CostCentersHandler) List(c *fiber.Ctx) error {
	items, err := h.directory.ListCostCenters(c.Context())
	if err != nil {
		return err
	}
	data := make([]dto.CostCenterResponse, 0, len(items))
	for i := range items {
		data = append(data, *costCenterResponse(&items[i]))
	}
	return c.JSON(data)
}

// Get GET /centros_de_custo/:id.
func (h *CostCentersHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "centro de custo")
	if err != nil {
		return err
	}
	cc, err := h.directory.GetCostCenter(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(costCenterResponse(cc))
}

// Create POST /centros_de_custo.
func (h *CostCentersHandler) Create(c *fiber.Ctx) error {
	var req dto.CostCenterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	cc, err := h.directory.CreateCostCenter(c.Context(), service.CostCenterInput{
		Name:        req.Name,
		Description: req.Description,
		Code:        req.Code,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(costCenterResponse(cc))
}

// Update PUT /centros_de_custo/:id.
func (h *CostCentersHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "centro de custo")
	if err != nil {
		return err
	}
	var req dto.CostCenterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	cc, err := h.directory.UpdateCostCenter(c.Context(), id, service.CostCenterInput{
		Name:        req.Name,
		Description: req.Description,
		Code:        req.Code,
	})
	if err != nil {
		return err
	}
	return c.JSON(costCenterResponse(cc))
}

// Delete DELETE /centros_de_custo/:id.
func (h *CostCentersHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "centro de custo")
	if err != nil {
		return err
	}
	if err := h.directory.DeleteCostCenter(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/suportehub/chamados-service/internal/api/dto"
	"github.com/suportehub/chamados-service/internal/service"
	apperrors "github.com/suportehub/chamados-service/pkg/util/errorutil"
)

// SectorsHandler exposes the sector CRUD.
type SectorsHandler struct {
	directory *service.DirectoryService
}

// NewSectorsHandler constructs handler.
func NewSectorsHandler(directory *service.DirectoryService) *SectorsHandler {
	return &SectorsHandler{directory: directory}
}

// List GET /setores.
func (h *SectorsHandler) List(c *fiber.Ctx) error {
	items, err := h.directory.ListSectors(c.Context())
	if err != nil {
		return err
	}
	data := make([]dto.SectorResponse, 0, len(items))
	for i := range items {
		data = append(data, *sectorResponse(&items[i].Sector, items[i].CostCenter))
	}
	return c.JSON(data)
}

// Get GET /setores/:id.
func (h *SectorsHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "setor")
	if err != nil {
		return err
	}
	item, err := h.directory.GetSector(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(sectorResponse(&item.Sector, item.CostCenter))
}

// Create POST /setores.
func (h *SectorsHandler) Create(c *fiber.Ctx) error {
	var req dto.SectorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	sector, err := h.directory.CreateSector(c.Context(), service.SectorInput{
		Name:         req.Name,
		Description:  req.Description,
		Code:         req.Code,
		CostCenterID: req.CostCenterID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(sectorResponse(sector, nil))
}

// Update PUT /setores/:id.
func (h *SectorsHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "setor")
	if err != nil {
		return err
	}
	var req dto.SectorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	sector, err := h.directory.UpdateSector(c.Context(), id, service.SectorInput{
		Name:         req.Name,
		Description:  req.Description,
		Code:         req.Code,
		CostCenterID: req.CostCenterID,
	})
	if err != nil {
		return err
	}
	return c.JSON(sectorResponse(sector, nil))
}

// Delete DELETE /setores/:id.
func (h *SectorsHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "setor")
	if err != nil {
		return err
	}
	if err := h.directory.DeleteSector(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

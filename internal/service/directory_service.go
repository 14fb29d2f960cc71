package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/suportehub/chamados-service/internal/domain"
	"github.com/suportehub/chamados-service/internal/repository"
	apperrors "github.com/suportehub/chamados-service/pkg/util/errorutil"
)

// DirectoryService manages the organizational reference data: cost centers
// and sectors.
type DirectoryService struct {
	costCenters repository.CostCenterRepository
	sectors     repository.SectorRepository
}

// NewDirectoryService constructs the service.
func NewDirectoryService(costCenters repository.CostCenterRepository, sectors repository.SectorRepository) *DirectoryService {
	return &DirectoryService{costCenters: costCenters, sectors: sectors}
}

// CostCenterInput describes a cost center payload.
type CostCenterInput struct {
	Name        string
	Description string
	Code        string
}

// SectorInput describes a sector payload.
type SectorInput struct {
	Name         string
	Description  *string
	Code         *string
	CostCenterID int64
}

// SectorWithCostCenter is a sector with its cost center loaded.
type SectorWithCostCenter struct {
	Sector     domain.Sector
	CostCenter *domain.CostCenter
}

func validateCostCenter(input CostCenterInput) error {
	fields := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		fields["nome"] = "required"
	}
	if strings.TrimSpace(input.Description) == "" {
		fields["descricao"] = "required"
	}
	if strings.TrimSpace(input.Code) == "" {
		fields["codigo"] = "required"
	}
	if len(fields) > 0 {
		return apperrors.NewUnprocessable("validation failed", fields)
	}
	return nil
}

// CreateCostCenter stores a new cost center.
func (s *DirectoryService) CreateCostCenter(ctx context.Context, input CostCenterInput) (*domain.CostCenter, error) {
	if err := validateCostCenter(input); err != nil {
		return nil, err
	}
	cc := &domain.CostCenter{Name: input.Name, Description: input.Description, Code: input.Code}
	if err := s.costCenters.Create(ctx, cc); err != nil {
		return nil, apperrors.MapError(err)
	}
	return cc, nil
}

// UpdateCostCenter replaces a cost center's fields.
func (s *DirectoryService) UpdateCostCenter(ctx context.Context, id int64, input CostCenterInput) (*domain.CostCenter, error) {
	cc, err := s.costCenters.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "centro de custo")
	}
	if err := validateCostCenter(input); err != nil {
		return nil, err
	}
	cc.Name = input.Name
	cc.Description = input.Description
	cc.Code = input.Code
	if err := s.costCenters.Update(ctx, cc); err != nil {
		return nil, apperrors.MapError(err)
	}
	return cc, nil
}

// GetCostCenter loads one cost center.
func (s *DirectoryService) GetCostCenter(ctx context.Context, id int64) (*domain.CostCenter, error) {
	cc, err := s.costCenters.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "centro de custo")
	}
	return cc, nil
}

// ListCostCenters returns all cost centers.
func (s *DirectoryService) ListCostCenters(ctx context.Context) ([]domain.CostCenter, error) {
	result, err := s.costCenters.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// DeleteCostCenter removes a cost center.
func (s *DirectoryService) DeleteCostCenter(ctx context.Context, id int64) error {
	if err := s.costCenters.Delete(ctx, id); err != nil {
		return notFoundOr(err, "centro de custo")
	}
	return nil
}

func (s *DirectoryService) validateSector(ctx context.Context, input SectorInput) error {
	fields := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		fields["nome"] = "required"
	}
	if input.CostCenterID <= 0 {
		fields["centro_de_custo_id"] = "required"
	} else if _, err := s.costCenters.GetByID(ctx, input.CostCenterID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			fields["centro_de_custo_id"] = "cost center does not exist"
		} else {
			return apperrors.MapError(err)
		}
	}
	if len(fields) > 0 {
		return apperrors.NewUnprocessable("validation failed", fields)
	}
	return nil
}

// CreateSector stores a new sector.
func (s *DirectoryService) CreateSector(ctx context.Context, input SectorInput) (*domain.Sector, error) {
	if err := s.validateSector(ctx, input); err != nil {
		return nil, err
	}
	sector := &domain.Sector{
		CostCenterID: input.CostCenterID,
		Name:         input.Name,
		Description:  input.Description,
		Code:         input.Code,
	}
	if err := s.sectors.Create(ctx, sector); err != nil {
		return nil, apperrors.MapError(err)
	}
	return sector, nil
}

// UpdateSector replaces a sector's fields.
func (s *DirectoryService) UpdateSector(ctx context.Context, id int64, input SectorInput) (*domain.Sector, error) {
	sector, err := s.sectors.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "setor")
	}
	if err := s.validateSector(ctx, input); err != nil {
		return nil, err
	}
	sector.CostCenterID = input.CostCenterID
	sector.Name = input.Name
	sector.Description = input.Description
	sector.Code = input.Code
	if err := s.sectors.Update(ctx, sector); err != nil {
		return nil, apperrors.MapError(err)
	}
	return sector, nil
}

// GetSector loads one sector with its cost center.
func (s *DirectoryService) GetSector(ctx context.Context, id int64) (*SectorWithCostCenter, error) {
	sector, err := s.sectors.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "setor")
	}
	return s.withCostCenter(ctx, *sector)
}

// ListSectors returns all sectors with their cost centers.
func (s *DirectoryService) ListSectors(ctx context.Context) ([]SectorWithCostCenter, error) {
	sectors, err := s.sectors.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	result := make([]SectorWithCostCenter, 0, len(sectors))
	for _, sector := range sectors {
		item, err := s.withCostCenter(ctx, sector)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, nil
}

// DeleteSector removes a sector.
func (s *DirectoryService) DeleteSector(ctx context.Context, id int64) error {
	if err := s.sectors.Delete(ctx, id); err != nil {
		return notFoundOr(err, "setor")
	}
	return nil
}

func (s *DirectoryService) withCostCenter(ctx context.Context, sector domain.Sector) (*SectorWithCostCenter, error) {
	item := SectorWithCostCenter{Sector: sector}
	cc, err := s.costCenters.GetByID(ctx, sector.CostCenterID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	item.CostCenter = cc
	return &item, nil
}

func notFoundOr(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.MapError(err)
}

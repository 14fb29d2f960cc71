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

// AttendantService manages attendants and their sector assignments. An
// attendant write may carry a setor_id, which upserts the attendant's first
// assignment row as a side effect; the same rows are also reachable through
// the direct assignment CRUD.
type AttendantService struct {
	attendants repository.AttendantRepository
	sectors    repository.SectorRepository
	links      repository.SectorAttendantRepository
}

// NewAttendantService constructs the service.
func NewAttendantService(attendants repository.AttendantRepository, sectors repository.SectorRepository, links repository.SectorAttendantRepository) *AttendantService {
	return &AttendantService{attendants: attendants, sectors: sectors, links: links}
}

// AttendantInput describes an attendant payload. SectorID, when present,
// triggers the assignment side effect.
type AttendantInput struct {
	Name      string
	Email     string
	Phone     *string
	UserID    *int64
	SectorID  *int64
	IsManager bool
}

// AssignmentInput describes a direct sector-attendant assignment payload.
type AssignmentInput struct {
	SectorID    int64
	AttendantID int64
	IsManager   bool
}

// AssignmentWithRelations is an assignment with both ends loaded.
type AssignmentWithRelations struct {
	Link      domain.SectorAttendant
	Sector    *domain.Sector
	Attendant *domain.Attendant
}

func (s *AttendantService) validateAttendant(ctx context.Context, input AttendantInput) error {
	fields := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		fields["nome"] = "required"
	}
	if strings.TrimSpace(input.Email) == "" {
		fields["email"] = "required"
	} else if !strings.Contains(input.Email, "@") {
		fields["email"] = "must be a valid email address"
	}
	if input.SectorID != nil {
		exists, err := s.sectors.Exists(ctx, *input.SectorID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if !exists {
			fields["setor_id"] = "sector does not exist"
		}
	}
	if len(fields) > 0 {
		return apperrors.NewUnprocessable("validation failed", fields)
	}
	return nil
}

// CreateAttendant stores a new attendant, optionally linking it to a sector.
func (s *AttendantService) CreateAttendant(ctx context.Context, input AttendantInput) (*domain.Attendant, error) {
	if err := s.validateAttendant(ctx, input); err != nil {
		return nil, err
	}
	attendant := &domain.Attendant{
		Name:   input.Name,
		Email:  input.Email,
		Phone:  input.Phone,
		UserID: input.UserID,
	}
	if err := s.attendants.Create(ctx, attendant); err != nil {
		return nil, apperrors.MapError(err)
	}
	if input.SectorID != nil {
		link := &domain.SectorAttendant{
			SectorID:    *input.SectorID,
			AttendantID: attendant.ID,
			IsManager:   input.IsManager,
		}
		if err := s.links.Create(ctx, link); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	return attendant, nil
}

// UpdateAttendant replaces an attendant's fields. A supplied setor_id
// updates the attendant's first assignment, or creates one when none exists.
func (s *AttendantService) UpdateAttendant(ctx context.Context, id int64, input AttendantInput) (*domain.Attendant, error) {
	attendant, err := s.attendants.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "atendente")
	}
	if err := s.validateAttendant(ctx, input); err != nil {
		return nil, err
	}
	attendant.Name = input.Name
	attendant.Email = input.Email
	attendant.Phone = input.Phone
	attendant.UserID = input.UserID
	if err := s.attendants.Update(ctx, attendant); err != nil {
		return nil, apperrors.MapError(err)
	}

	if input.SectorID != nil {
		link, err := s.links.FirstByAttendant(ctx, attendant.ID)
		switch {
		case err == nil:
			link.SectorID = *input.SectorID
			link.IsManager = input.IsManager
			if err := s.links.Update(ctx, link); err != nil {
				return nil, apperrors.MapError(err)
			}
		case errors.Is(err, pgx.ErrNoRows):
			link = &domain.SectorAttendant{
				SectorID:    *input.SectorID,
				AttendantID: attendant.ID,
				IsManager:   input.IsManager,
			}
			if err := s.links.Create(ctx, link); err != nil {
				return nil, apperrors.MapError(err)
			}
		default:
			return nil, apperrors.MapError(err)
		}
	}
	return attendant, nil
}

// GetAttendant loads one attendant.
func (s *AttendantService) GetAttendant(ctx context.Context, id int64) (*domain.Attendant, error) {
	attendant, err := s.attendants.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "atendente")
	}
	return attendant, nil
}

// ListAttendants returns all attendants.
func (s *AttendantService) ListAttendants(ctx context.Context) ([]domain.Attendant, error) {
	result, err := s.attendants.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// DeleteAttendant removes an attendant.
func (s *AttendantService) DeleteAttendant(ctx context.Context, id int64) error {
	if err := s.attendants.Delete(ctx, id); err != nil {
		return notFoundOr(err, "atendente")
	}
	return nil
}

func (s *AttendantService) validateAssignment(ctx context.Context, input AssignmentInput) error {
	fields := map[string]any{}
	exists, err := s.sectors.Exists(ctx, input.SectorID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !exists {
		fields["setor_id"] = "sector does not exist"
	}
	if _, err := s.attendants.GetByID(ctx, input.AttendantID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			fields["atendente_id"] = "attendant does not exist"
		} else {
			return apperrors.MapError(err)
		}
	}
	if len(fields) > 0 {
		return apperrors.NewUnprocessable("validation failed", fields)
	}
	return nil
}

// CreateAssignment stores a direct sector-attendant assignment.
func (s *AttendantService) CreateAssignment(ctx context.Context, input AssignmentInput) (*AssignmentWithRelations, error) {
	if err := s.validateAssignment(ctx, input); err != nil {
		return nil, err
	}
	link := &domain.SectorAttendant{
		SectorID:    input.SectorID,
		AttendantID: input.AttendantID,
		IsManager:   input.IsManager,
	}
	if err := s.links.Create(ctx, link); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.assignmentWithRelations(ctx, link)
}

// UpdateAssignment replaces an assignment's fields.
func (s *AttendantService) UpdateAssignment(ctx context.Context, id int64, input AssignmentInput) (*AssignmentWithRelations, error) {
	link, err := s.links.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "setor_atendente")
	}
	if err := s.validateAssignment(ctx, input); err != nil {
		return nil, err
	}
	link.SectorID = input.SectorID
	link.AttendantID = input.AttendantID
	link.IsManager = input.IsManager
	if err := s.links.Update(ctx, link); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.assignmentWithRelations(ctx, link)
}

// GetAssignment loads one assignment with its sector and attendant.
func (s *AttendantService) GetAssignment(ctx context.Context, id int64) (*AssignmentWithRelations, error) {
	link, err := s.links.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "setor_atendente")
	}
	return s.assignmentWithRelations(ctx, link)
}

// ListAssignments returns all assignments with both ends loaded.
func (s *AttendantService) ListAssignments(ctx context.Context) ([]AssignmentWithRelations, error) {
	links, err := s.links.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	result := make([]AssignmentWithRelations, 0, len(links))
	for i := range links {
		item, err := s.assignmentWithRelations(ctx, &links[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, nil
}

// DeleteAssignment removes an assignment.
func (s *AttendantService) DeleteAssignment(ctx context.Context, id int64) error {
	if err := s.links.Delete(ctx, id); err != nil {
		return notFoundOr(err, "setor_atendente")
	}
	return nil
}

func (s *AttendantService) assignmentWithRelations(ctx context.Context, link *domain.SectorAttendant) (*AssignmentWithRelations, error) {
	item := AssignmentWithRelations{Link: *link}
	sector, err := s.sectors.GetByID(ctx, link.SectorID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	item.Sector = sector
	attendant, err := s.attendants.GetByID(ctx, link.AttendantID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	item.Attendant = attendant
	return &item, nil
}

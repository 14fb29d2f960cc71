package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/suportehub/chamados-service/internal/api/dto"
	"github.com/suportehub/chamados-service/internal/domain"
	"github.com/suportehub/chamados-service/internal/service"
	apperrors "github.com/suportehub/chamados-service/pkg/util/errorutil"
)

// idParam parses the :id route parameter. Non-numeric ids behave like a
// missing resource.
func idParam(c *fiber.Ctx, resource string) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound(resource, nil)
	}
	return id, nil
}

func userResponse(user *domain.User) *dto.UserResponse {
	if user == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		LevelAccess: user.LevelAccess,
		Phone:       user.Phone,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func costCenterResponse(cc *domain.CostCenter) *dto.CostCenterResponse {
	if cc == nil {
		return nil
	}
	return &dto.CostCenterResponse{
		ID:          cc.ID,
		Name:        cc.Name,
		Description: cc.Description,
		Code:        cc.Code,
		CreatedAt:   cc.CreatedAt,
		UpdatedAt:   cc.UpdatedAt,
	}
}

func sectorResponse(sector *domain.Sector, cc *domain.CostCenter) *dto.SectorResponse {
	if sector == nil {
		return nil
	}
	return &dto.SectorResponse{
		ID:           sector.ID,
		CostCenterID: sector.CostCenterID,
		Name:         sector.Name,
		Description:  sector.Description,
		Code:         sector.Code,
		CreatedAt:    sector.CreatedAt,
		UpdatedAt:    sector.UpdatedAt,
		CostCenter:   costCenterResponse(cc),
	}
}

func attendantResponse(attendant *domain.Attendant) *dto.AttendantResponse {
	if attendant == nil {
		return nil
	}
	return &dto.AttendantResponse{
		ID:        attendant.ID,
		Name:      attendant.Name,
		Email:     attendant.Email,
		Phone:     attendant.Phone,
		UserID:    attendant.UserID,
		CreatedAt: attendant.CreatedAt,
		UpdatedAt: attendant.UpdatedAt,
	}
}

func assignmentResponse(item *service.AssignmentWithRelations) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:          item.Link.ID,
		SectorID:    item.Link.SectorID,
		AttendantID: item.Link.AttendantID,
		IsManager:   item.Link.IsManager,
		CreatedAt:   item.Link.CreatedAt,
		UpdatedAt:   item.Link.UpdatedAt,
		Sector:      sectorResponse(item.Sector, nil),
		Attendant:   attendantResponse(item.Attendant),
	}
}

func historyResponse(item service.HistoryWithUser) dto.HistoryResponse {
	return dto.HistoryResponse{
		ID:           item.Entry.ID,
		TicketID:     item.Entry.TicketID,
		UserID:       item.Entry.UserID,
		Action:       item.Entry.Action,
		Description:  item.Entry.Description,
		PreviousData: item.Entry.PreviousData,
		NewData:      item.Entry.NewData,
		CreatedAt:    item.Entry.CreatedAt,
		User:         userResponse(item.User),
	}
}

func ticketResponse(item *service.TicketWithRelations) dto.TicketResponse {
	ticket := item.Ticket
	resp := dto.TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		SectorID:    ticket.SectorID,
		RequesterID: ticket.RequesterID,
		AttendantID: ticket.AttendantID,
		StartedAt:   ticket.StartedAt,
		EndedAt:     ticket.EndedAt,
		Notes:       ticket.Notes,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
		Sector:      sectorResponse(item.Sector, nil),
		Requester:   userResponse(item.Requester),
		Attendant:   attendantResponse(item.Attendant),
	}
	for _, entry := range item.History {
		resp.History = append(resp.History, historyResponse(entry))
	}
	return resp
}

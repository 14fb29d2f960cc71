package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/suportehub/chamados-service/internal/domain"
	"github.com/suportehub/chamados-service/internal/events"
	"github.com/suportehub/chamados-service/internal/repository"
	apperrors "github.com/suportehub/chamados-service/pkg/util/errorutil"
)

// ticketPageSize is the fixed page size for ticket listings.
const ticketPageSize = 10

// TicketService coordinates the ticket lifecycle. Every mutation appends
// exactly one history entry, committed atomically with the ticket write by
// the repository.
type TicketService struct {
	tickets    repository.TicketRepository
	history    repository.TicketHistoryRepository
	sectors    repository.SectorRepository
	users      repository.UserRepository
	attendants repository.AttendantRepository
	links      repository.SectorAttendantRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo          repository.TicketRepository
	HistoryRepo         repository.TicketHistoryRepository
	SectorRepo          repository.SectorRepository
	UserRepo            repository.UserRepository
	AttendantRepo       repository.AttendantRepository
	SectorAttendantRepo repository.SectorAttendantRepository
	Dispatcher          events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		history:    deps.HistoryRepo,
		sectors:    deps.SectorRepo,
		users:      deps.UserRepo,
		attendants: deps.AttendantRepo,
		links:      deps.SectorAttendantRepo,
		dispatcher: deps.Dispatcher,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	SectorID    int64
	Priority    domain.TicketPriority
}

// TicketUpdateInput carries the optional fields of a generic update. Nil
// means "not supplied".
type TicketUpdateInput struct {
	Status   *domain.TicketStatus
	Priority *domain.TicketPriority
	Notes    *string
	SectorID *int64
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	Status   *domain.TicketStatus
	SectorID *int64
	Priority *domain.TicketPriority
	Page     int
}

// TransferInput describes a sector transfer.
type TransferInput struct {
	SectorID int64
	Notes    string
}

// TicketWithRelations is a ticket with its related rows eagerly loaded.
type TicketWithRelations struct {
	Ticket    domain.Ticket
	Sector    *domain.Sector
	Requester *domain.User
	Attendant *domain.Attendant
	History   []HistoryWithUser
}

// HistoryWithUser pairs a history entry with its acting user.
type HistoryWithUser struct {
	Entry domain.TicketHistory
	User  *domain.User
}

// PageMeta describes a listing page.
type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// Create opens a new ticket for the requester. Status and requester id are
// forced server-side; callers cannot override them.
func (s *TicketService) Create(ctx context.Context, requesterID int64, input TicketCreateInput) (*TicketWithRelations, error) {
	fields := map[string]any{}
	if strings.TrimSpace(input.Title) == "" {
		fields["titulo"] = "required"
	} else if len(input.Title) > 255 {
		fields["titulo"] = "must not exceed 255 characters"
	}
	if strings.TrimSpace(input.Description) == "" {
		fields["descricao"] = "required"
	}
	if !domain.ValidPriority(input.Priority) {
		fields["prioridade"] = "must be one of: baixa, media, alta, urgente"
	}
	if input.SectorID <= 0 {
		fields["setor_id"] = "required"
	} else if err := s.requireSector(ctx, input.SectorID, fields); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, apperrors.NewUnprocessable("validation failed", fields)
	}

	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
		SectorID:    input.SectorID,
		RequesterID: requesterID,
	}
	entry := &domain.TicketHistory{
		UserID:      requesterID,
		Action:      domain.ActionCreation,
		Description: "Chamado criado",
	}
	if err := s.tickets.CreateWithHistory(ctx, ticket, entry); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  requesterID,
		Payload: events.TicketCreatedPayload{
			SectorID: ticket.SectorID,
			Priority: ticket.Priority,
			Title:    ticket.Title,
		},
	})
	return s.withRelations(ctx, ticket, false)
}

// List returns one page of tickets. When the acting user is linked to an
// attendant, results are limited to the attendant's assigned sectors and the
// setor_id filter is ignored.
func (s *TicketService) List(ctx context.Context, actorID int64, filter TicketListFilter) ([]TicketWithRelations, *PageMeta, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	repoFilter := repository.TicketFilter{
		Status:   filter.Status,
		SectorID: filter.SectorID,
		Priority: filter.Priority,
		Limit:    ticketPageSize,
		Offset:   (page - 1) * ticketPageSize,
	}

	scope, scoped, err := s.attendantScope(ctx, actorID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	if scoped {
		if len(scope) == 0 {
			// attendant without a sector assignment sees nothing
			return []TicketWithRelations{}, &PageMeta{CurrentPage: page, PerPage: ticketPageSize, Total: 0, LastPage: 1}, nil
		}
		repoFilter.ScopeSectorIDs = scope
	}

	tickets, total, err := s.tickets.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	items, err := s.expand(ctx, tickets)
	if err != nil {
		return nil, nil, err
	}

	lastPage := int((total + ticketPageSize - 1) / ticketPageSize)
	if lastPage < 1 {
		lastPage = 1
	}
	meta := &PageMeta{CurrentPage: page, PerPage: ticketPageSize, Total: total, LastPage: lastPage}
	return items, meta, nil
}

// Get returns one ticket with sector, requester, attendant and full history.
func (s *TicketService) Get(ctx context.Context, ticketID int64) (*TicketWithRelations, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	return s.withRelations(ctx, ticket, true)
}

// Update applies only the supplied fields and records before/after
// snapshots. Status transitions are not constrained here; any status value
// may replace any other, matching the generic update semantics.
func (s *TicketService) Update(ctx context.Context, actorID, ticketID int64, input TicketUpdateInput) (*TicketWithRelations, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}

	fields := map[string]any{}
	if input.Status != nil && !domain.ValidStatus(*input.Status) {
		fields["status"] = "must be one of: aberto, em_andamento, transferido, resolvido, fechado"
	}
	if input.Priority != nil && !domain.ValidPriority(*input.Priority) {
		fields["prioridade"] = "must be one of: baixa, media, alta, urgente"
	}
	if input.SectorID != nil {
		if err := s.requireSector(ctx, *input.SectorID, fields); err != nil {
			return nil, err
		}
	}
	if len(fields) > 0 {
		return nil, apperrors.NewUnprocessable("validation failed", fields)
	}

	before := ticket.Snapshot()
	oldStatus := ticket.Status
	if input.Status != nil {
		ticket.Status = *input.Status
	}
	if input.Priority != nil {
		ticket.Priority = *input.Priority
	}
	if input.Notes != nil {
		ticket.Notes = input.Notes
	}
	if input.SectorID != nil {
		ticket.SectorID = *input.SectorID
	}

	entry := &domain.TicketHistory{
		UserID:       actorID,
		Action:       domain.ActionUpdate,
		Description:  "Chamado atualizado",
		PreviousData: before,
	}
	if err := s.tickets.UpdateWithHistory(ctx, ticket, entry); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		ActorID:  actorID,
		Payload: events.TicketUpdatedPayload{
			OldStatus: oldStatus,
			NewStatus: ticket.Status,
		},
	})
	return s.withRelations(ctx, ticket, false)
}

// Transfer moves the ticket to another sector and forces status
// `transferido` regardless of the prior status.
func (s *TicketService) Transfer(ctx context.Context, actorID, ticketID int64, input TransferInput) (*TicketWithRelations, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}

	fields := map[string]any{}
	if strings.TrimSpace(input.Notes) == "" {
		fields["observacoes"] = "required"
	}
	if input.SectorID <= 0 {
		fields["setor_id"] = "required"
	} else if err := s.requireSector(ctx, input.SectorID, fields); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, apperrors.NewUnprocessable("validation failed", fields)
	}

	before := ticket.Snapshot()
	oldSector := ticket.SectorID
	ticket.SectorID = input.SectorID
	ticket.Status = domain.TicketStatusTransferred
	ticket.Notes = &input.Notes

	entry := &domain.TicketHistory{
		UserID:       actorID,
		Action:       domain.ActionTransfer,
		Description:  "Chamado transferido para outro setor",
		PreviousData: before,
	}
	if err := s.tickets.UpdateWithHistory(ctx, ticket, entry); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketTransferred,
		TicketID: ticket.ID,
		ActorID:  actorID,
		Payload: events.TicketTransferredPayload{
			OldSectorID: oldSector,
			NewSectorID: ticket.SectorID,
		},
	})
	return s.withRelations(ctx, ticket, false)
}

// Resolve forces status `resolvido` and stamps the completion time,
// regardless of the prior status.
func (s *TicketService) Resolve(ctx context.Context, actorID, ticketID int64, notes string) (*TicketWithRelations, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	if strings.TrimSpace(notes) == "" {
		return nil, apperrors.NewUnprocessable("validation failed", map[string]any{"observacoes": "required"})
	}

	before := ticket.Snapshot()
	oldStatus := ticket.Status
	now := time.Now()
	ticket.Status = domain.TicketStatusResolved
	ticket.EndedAt = &now
	ticket.Notes = &notes

	entry := &domain.TicketHistory{
		UserID:       actorID,
		Action:       domain.ActionResolution,
		Description:  "Chamado resolvido",
		PreviousData: before,
	}
	if err := s.tickets.UpdateWithHistory(ctx, ticket, entry); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketResolved,
		TicketID: ticket.ID,
		ActorID:  actorID,
		Payload: events.TicketResolvedPayload{
			OldStatus: oldStatus,
			EndedAt:   now,
		},
	})
	return s.withRelations(ctx, ticket, false)
}

// History returns the full audit trail of a ticket, newest first, with the
// acting user of each entry loaded.
func (s *TicketService) History(ctx context.Context, ticketID int64) ([]HistoryWithUser, error) {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, s.mapLookupErr(err)
	}
	entries, err := s.history.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.historyWithUsers(ctx, entries)
}

// attendantScope resolves the sector ids the actor may see. scoped is false
// when the actor is not linked to any attendant record.
func (s *TicketService) attendantScope(ctx context.Context, actorID int64) ([]int64, bool, error) {
	attendant, err := s.attendants.GetByUserID(ctx, actorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	ids, err := s.links.ListSectorIDsByAttendant(ctx, attendant.ID)
	if err != nil {
		return nil, false, err
	}
	return ids, true, nil
}

func (s *TicketService) requireSector(ctx context.Context, sectorID int64, fields map[string]any) error {
	exists, err := s.sectors.Exists(ctx, sectorID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !exists {
		fields["setor_id"] = "sector does not exist"
	}
	return nil
}

func (s *TicketService) mapLookupErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("chamado", nil)
	}
	return apperrors.MapError(err)
}

func (s *TicketService) withRelations(ctx context.Context, ticket *domain.Ticket, includeHistory bool) (*TicketWithRelations, error) {
	items, err := s.expand(ctx, []domain.Ticket{*ticket})
	if err != nil {
		return nil, err
	}
	result := items[0]
	if includeHistory {
		entries, err := s.history.ListByTicket(ctx, ticket.ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		result.History, err = s.historyWithUsers(ctx, entries)
		if err != nil {
			return nil, err
		}
	}
	return &result, nil
}

// expand batch-loads sectors, requesters and attendants for a ticket page.
func (s *TicketService) expand(ctx context.Context, tickets []domain.Ticket) ([]TicketWithRelations, error) {
	sectorIDs := make([]int64, 0, len(tickets))
	userIDs := make([]int64, 0, len(tickets))
	attendantIDs := make([]int64, 0)
	seenSectors := map[int64]bool{}
	seenUsers := map[int64]bool{}
	seenAttendants := map[int64]bool{}

	for i := range tickets {
		if !seenSectors[tickets[i].SectorID] {
			seenSectors[tickets[i].SectorID] = true
			sectorIDs = append(sectorIDs, tickets[i].SectorID)
		}
		if !seenUsers[tickets[i].RequesterID] {
			seenUsers[tickets[i].RequesterID] = true
			userIDs = append(userIDs, tickets[i].RequesterID)
		}
		if tickets[i].AttendantID != nil && !seenAttendants[*tickets[i].AttendantID] {
			seenAttendants[*tickets[i].AttendantID] = true
			attendantIDs = append(attendantIDs, *tickets[i].AttendantID)
		}
	}

	sectors, err := s.sectors.ListByIDs(ctx, sectorIDs)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	users, err := s.users.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	attendants, err := s.attendants.ListByIDs(ctx, attendantIDs)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	result := make([]TicketWithRelations, 0, len(tickets))
	for i := range tickets {
		item := TicketWithRelations{Ticket: tickets[i]}
		if sector, ok := sectors[tickets[i].SectorID]; ok {
			sectorCopy := sector
			item.Sector = &sectorCopy
		}
		if user, ok := users[tickets[i].RequesterID]; ok {
			userCopy := user
			item.Requester = &userCopy
		}
		if tickets[i].AttendantID != nil {
			if attendant, ok := attendants[*tickets[i].AttendantID]; ok {
				attendantCopy := attendant
				item.Attendant = &attendantCopy
			}
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *TicketService) historyWithUsers(ctx context.Context, entries []domain.TicketHistory) ([]HistoryWithUser, error) {
	userIDs := make([]int64, 0, len(entries))
	seen := map[int64]bool{}
	for i := range entries {
		if !seen[entries[i].UserID] {
			seen[entries[i].UserID] = true
			userIDs = append(userIDs, entries[i].UserID)
		}
	}
	users, err := s.users.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	result := make([]HistoryWithUser, 0, len(entries))
	for i := range entries {
		item := HistoryWithUser{Entry: entries[i]}
		if user, ok := users[entries[i].UserID]; ok {
			userCopy := user
			item.User = &userCopy
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

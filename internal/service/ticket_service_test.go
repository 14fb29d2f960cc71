package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suportehub/chamados-service/internal/domain"
	"github.com/suportehub/chamados-service/internal/events"
	apperrors "github.com/suportehub/chamados-service/pkg/util/errorutil"
)

type capturingDispatcher struct {
	published []events.Event
}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type ticketFixture struct {
	service    *TicketService
	store      *fakeTicketStore
	sectors    *fakeSectorRepo
	users      *fakeUserRepo
	attendants *fakeAttendantRepo
	links      *fakeLinkRepo
	dispatcher *capturingDispatcher
}

func newTicketFixture() *ticketFixture {
	fx := &ticketFixture{
		store:      newFakeTicketStore(),
		sectors:    newFakeSectorRepo(1, 2, 3),
		users:      newFakeUserRepo(domain.User{ID: 10, Name: "Ana", Email: "ana@example.com"}),
		attendants: newFakeAttendantRepo(),
		links:      newFakeLinkRepo(),
		dispatcher: &capturingDispatcher{},
	}
	fx.service = NewTicketService(TicketDependencies{
		TicketRepo:          fx.store,
		HistoryRepo:         fx.store,
		SectorRepo:          fx.sectors,
		UserRepo:            fx.users,
		AttendantRepo:       fx.attendants,
		SectorAttendantRepo: fx.links,
		Dispatcher:          fx.dispatcher,
	})
	return fx
}

func (fx *ticketFixture) mustCreate(t *testing.T, requesterID int64) *TicketWithRelations {
	t.Helper()
	created, err := fx.service.Create(context.Background(), requesterID, TicketCreateInput{
		Title:       "Impressora sem toner",
		Description: "A impressora do segundo andar parou",
		SectorID:    1,
		Priority:    domain.TicketPriorityMedium,
	})
	require.NoError(t, err)
	return created
}

func TestCreateForcesOpenStatusAndRequester(t *testing.T) {
	fx := newTicketFixture()

	created := fx.mustCreate(t, 10)

	assert.Equal(t, domain.TicketStatusOpen, created.Ticket.Status)
	assert.Equal(t, int64(10), created.Ticket.RequesterID)
	require.NotNil(t, created.Sector)
	assert.Equal(t, int64(1), created.Sector.ID)
	require.NotNil(t, created.Requester)
	assert.Equal(t, "Ana", created.Requester.Name)

	entries := fx.store.entriesFor(created.Ticket.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionCreation, entries[0].Action)
	assert.Equal(t, int64(10), entries[0].UserID)
	assert.Equal(t, "Chamado criado", entries[0].Description)

	require.Len(t, fx.dispatcher.published, 1)
	assert.Equal(t, events.EventTicketCreated, fx.dispatcher.published[0].Type)
	assert.Equal(t, created.Ticket.ID, fx.dispatcher.published[0].TicketID)
}

func TestCreateValidation(t *testing.T) {
	fx := newTicketFixture()

	cases := []struct {
		name  string
		input TicketCreateInput
		field string
	}{
		{
			name:  "missing title",
			input: TicketCreateInput{Description: "d", SectorID: 1, Priority: domain.TicketPriorityLow},
			field: "titulo",
		},
		{
			name:  "missing description",
			input: TicketCreateInput{Title: "t", SectorID: 1, Priority: domain.TicketPriorityLow},
			field: "descricao",
		},
		{
			name:  "invalid priority",
			input: TicketCreateInput{Title: "t", Description: "d", SectorID: 1, Priority: "critica"},
			field: "prioridade",
		},
		{
			name:  "unknown sector",
			input: TicketCreateInput{Title: "t", Description: "d", SectorID: 99, Priority: domain.TicketPriorityLow},
			field: "setor_id",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.service.Create(context.Background(), 10, tc.input)
			require.Error(t, err)

			var domainErr *apperrors.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, 422, domainErr.HTTPStatus)
			assert.Contains(t, domainErr.Details, tc.field)
		})
	}
}

func TestUpdateAppliesOnlySuppliedFieldsAndSnapshots(t *testing.T) {
	fx := newTicketFixture()
	created := fx.mustCreate(t, 10)

	status := domain.TicketStatusInProgress
	updated, err := fx.service.Update(context.Background(), 10, created.Ticket.ID, TicketUpdateInput{
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusInProgress, updated.Ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, updated.Ticket.Priority)
	assert.Equal(t, int64(1), updated.Ticket.SectorID)

	entries := fx.store.entriesFor(created.Ticket.ID)
	require.Len(t, entries, 2)
	entry := entries[1]
	assert.Equal(t, domain.ActionUpdate, entry.Action)
	require.NotNil(t, entry.PreviousData)
	assert.Equal(t, "aberto", entry.PreviousData["status"])
	require.NotNil(t, entry.NewData)
	assert.Equal(t, "em_andamento", entry.NewData["status"])
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	fx := newTicketFixture()
	created := fx.mustCreate(t, 10)

	bad := domain.TicketStatus("cancelado")
	_, err := fx.service.Update(context.Background(), 10, created.Ticket.ID, TicketUpdateInput{Status: &bad})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 422, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Details, "status")
}

func TestUpdateUnknownTicketReturnsNotFound(t *testing.T) {
	fx := newTicketFixture()

	_, err := fx.service.Update(context.Background(), 10, 999, TicketUpdateInput{})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestTransferForcesStatusFromAnyState(t *testing.T) {
	fx := newTicketFixture()
	created := fx.mustCreate(t, 10)

	// even a resolved ticket moves back to transferido
	_, err := fx.service.Resolve(context.Background(), 10, created.Ticket.ID, "resolvido no local")
	require.NoError(t, err)

	transferred, err := fx.service.Transfer(context.Background(), 10, created.Ticket.ID, TransferInput{
		SectorID: 2,
		Notes:    "encaminhado para TI",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusTransferred, transferred.Ticket.Status)
	assert.Equal(t, int64(2), transferred.Ticket.SectorID)
	require.NotNil(t, transferred.Ticket.Notes)
	assert.Equal(t, "encaminhado para TI", *transferred.Ticket.Notes)

	entries := fx.store.entriesFor(created.Ticket.ID)
	require.Len(t, entries, 3)
	last := entries[2]
	assert.Equal(t, domain.ActionTransfer, last.Action)
	assert.Equal(t, "resolvido", last.PreviousData["status"])
	assert.Equal(t, "transferido", last.NewData["status"])
}

func TestTransferRequiresNotesAndSector(t *testing.T) {
	fx := newTicketFixture()
	created := fx.mustCreate(t, 10)

	_, err := fx.service.Transfer(context.Background(), 10, created.Ticket.ID, TransferInput{SectorID: 99})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 422, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Details, "observacoes")
	assert.Contains(t, domainErr.Details, "setor_id")
}

func TestResolveStampsCompletionTime(t *testing.T) {
	fx := newTicketFixture()
	created := fx.mustCreate(t, 10)

	before := time.Now()
	resolved, err := fx.service.Resolve(context.Background(), 10, created.Ticket.ID, "trocado o toner")
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusResolved, resolved.Ticket.Status)
	require.NotNil(t, resolved.Ticket.EndedAt)
	assert.False(t, resolved.Ticket.EndedAt.Before(before))

	entries := fx.store.entriesFor(created.Ticket.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.ActionResolution, entries[1].Action)
}

func TestResolveRequiresNotes(t *testing.T) {
	fx := newTicketFixture()
	created := fx.mustCreate(t, 10)

	_, err := fx.service.Resolve(context.Background(), 10, created.Ticket.ID, "  ")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 422, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Details, "observacoes")
}

func TestListScopesAttendantToAssignedSectors(t *testing.T) {
	fx := newTicketFixture()

	// tickets across sectors 1, 2 and 3
	for _, sectorID := range []int64{1, 2, 3} {
		_, err := fx.service.Create(context.Background(), 10, TicketCreateInput{
			Title:       "Chamado",
			Description: "descricao",
			SectorID:    sectorID,
			Priority:    domain.TicketPriorityLow,
		})
		require.NoError(t, err)
	}

	// user 20 is an attendant assigned to sector 2 only
	userID := int64(20)
	fx.users.users[20] = domain.User{ID: 20, Name: "Bruno", Email: "bruno@example.com"}
	attendant := domain.Attendant{ID: 5, Name: "Bruno", Email: "bruno@example.com", UserID: &userID}
	fx.attendants.attendants[5] = attendant
	require.NoError(t, fx.links.Create(context.Background(), &domain.SectorAttendant{SectorID: 2, AttendantID: 5}))

	// a conflicting setor_id filter must not widen the scope
	otherSector := int64(3)
	items, meta, err := fx.service.List(context.Background(), 20, TicketListFilter{SectorID: &otherSector})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].Ticket.SectorID)
	assert.Equal(t, int64(1), meta.Total)
}

func TestListAttendantWithoutAssignmentsSeesNothing(t *testing.T) {
	fx := newTicketFixture()
	fx.mustCreate(t, 10)

	userID := int64(20)
	fx.users.users[20] = domain.User{ID: 20, Name: "Bruno", Email: "bruno@example.com"}
	fx.attendants.attendants[5] = domain.Attendant{ID: 5, Name: "Bruno", Email: "bruno@example.com", UserID: &userID}

	items, meta, err := fx.service.List(context.Background(), 20, TicketListFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(0), meta.Total)
	assert.Equal(t, 1, meta.LastPage)
}

func TestListPaginates(t *testing.T) {
	fx := newTicketFixture()

	for i := 0; i < 13; i++ {
		fx.mustCreate(t, 10)
	}

	items, meta, err := fx.service.List(context.Background(), 10, TicketListFilter{Page: 2})
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 10, meta.PerPage)
	assert.Equal(t, int64(13), meta.Total)
	assert.Equal(t, 2, meta.LastPage)
}

func TestListFiltersByStatus(t *testing.T) {
	fx := newTicketFixture()
	created := fx.mustCreate(t, 10)
	fx.mustCreate(t, 10)

	_, err := fx.service.Resolve(context.Background(), 10, created.Ticket.ID, "feito")
	require.NoError(t, err)

	status := domain.TicketStatusResolved
	items, meta, err := fx.service.List(context.Background(), 10, TicketListFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, created.Ticket.ID, items[0].Ticket.ID)
	assert.Equal(t, int64(1), meta.Total)
}

func TestHistoryReturnsNewestFirstWithUsers(t *testing.T) {
	fx := newTicketFixture()
	created := fx.mustCreate(t, 10)

	_, err := fx.service.Resolve(context.Background(), 10, created.Ticket.ID, "feito")
	require.NoError(t, err)
	_, err = fx.service.Transfer(context.Background(), 10, created.Ticket.ID, TransferInput{SectorID: 2, Notes: "reaberto em outro setor"})
	require.NoError(t, err)

	history, err := fx.service.History(context.Background(), created.Ticket.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, domain.ActionTransfer, history[0].Entry.Action)
	assert.Equal(t, domain.ActionResolution, history[1].Entry.Action)
	assert.Equal(t, domain.ActionCreation, history[2].Entry.Action)
	require.NotNil(t, history[0].User)
	assert.Equal(t, "Ana", history[0].User.Name)
}

func TestHistoryUnknownTicketReturnsNotFound(t *testing.T) {
	fx := newTicketFixture()

	_, err := fx.service.History(context.Background(), 42)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestGetIncludesHistory(t *testing.T) {
	fx := newTicketFixture()
	created := fx.mustCreate(t, 10)

	got, err := fx.service.Get(context.Background(), created.Ticket.ID)
	require.NoError(t, err)
	require.Len(t, got.History, 1)
	assert.Equal(t, domain.ActionCreation, got.History[0].Entry.Action)
}

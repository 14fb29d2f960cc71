package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/suportehub/chamados-service/internal/domain"
	"github.com/suportehub/chamados-service/internal/repository"
)

// fakeTicketStore backs both the ticket and history repositories in tests,
// mimicking the transactional repository: every mutation appends exactly one
// entry together with the ticket write.
type fakeTicketStore struct {
	tickets     map[int64]domain.Ticket
	entries     []domain.TicketHistory
	nextID      int64
	nextEntryID int64
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{tickets: map[int64]domain.Ticket{}}
}

func (f *fakeTicketStore) CreateWithHistory(_ context.Context, ticket *domain.Ticket, entry *domain.TicketHistory) error {
	f.nextID++
	now := time.Now()
	ticket.ID = f.nextID
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	f.tickets[ticket.ID] = *ticket

	entry.TicketID = ticket.ID
	f.appendEntry(entry)
	return nil
}

func (f *fakeTicketStore) UpdateWithHistory(_ context.Context, ticket *domain.Ticket, entry *domain.TicketHistory) error {
	if _, ok := f.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	f.tickets[ticket.ID] = *ticket

	entry.TicketID = ticket.ID
	entry.NewData = ticket.Snapshot()
	f.appendEntry(entry)
	return nil
}

func (f *fakeTicketStore) appendEntry(entry *domain.TicketHistory) {
	f.nextEntryID++
	entry.ID = f.nextEntryID
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, *entry)
}

func (f *fakeTicketStore) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (f *fakeTicketStore) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, int64, error) {
	matched := make([]domain.Ticket, 0, len(f.tickets))
	for _, ticket := range f.tickets {
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && ticket.Priority != *filter.Priority {
			continue
		}
		if len(filter.ScopeSectorIDs) > 0 {
			found := false
			for _, id := range filter.ScopeSectorIDs {
				if ticket.SectorID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		} else if filter.SectorID != nil && ticket.SectorID != *filter.SectorID {
			continue
		}
		matched = append(matched, ticket)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return []domain.Ticket{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

// ListByTicket returns entries newest first, as the SQL repository does.
func (f *fakeTicketStore) ListByTicket(_ context.Context, ticketID int64) ([]domain.TicketHistory, error) {
	result := []domain.TicketHistory{}
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].TicketID == ticketID {
			result = append(result, f.entries[i])
		}
	}
	return result, nil
}

func (f *fakeTicketStore) entriesFor(ticketID int64) []domain.TicketHistory {
	result := []domain.TicketHistory{}
	for _, entry := range f.entries {
		if entry.TicketID == ticketID {
			result = append(result, entry)
		}
	}
	return result
}

type fakeSectorRepo struct {
	sectors map[int64]domain.Sector
	nextID  int64
}

func newFakeSectorRepo(ids ...int64) *fakeSectorRepo {
	repo := &fakeSectorRepo{sectors: map[int64]domain.Sector{}}
	for _, id := range ids {
		repo.sectors[id] = domain.Sector{ID: id, Name: "Setor", CostCenterID: 1}
		if id > repo.nextID {
			repo.nextID = id
		}
	}
	return repo
}

func (f *fakeSectorRepo) Create(_ context.Context, sector *domain.Sector) error {
	f.nextID++
	sector.ID = f.nextID
	f.sectors[sector.ID] = *sector
	return nil
}

func (f *fakeSectorRepo) Update(_ context.Context, sector *domain.Sector) error {
	if _, ok := f.sectors[sector.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.sectors[sector.ID] = *sector
	return nil
}

func (f *fakeSectorRepo) GetByID(_ context.Context, id int64) (*domain.Sector, error) {
	sector, ok := f.sectors[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &sector, nil
}

func (f *fakeSectorRepo) List(_ context.Context) ([]domain.Sector, error) {
	result := make([]domain.Sector, 0, len(f.sectors))
	for _, sector := range f.sectors {
		result = append(result, sector)
	}
	return result, nil
}

func (f *fakeSectorRepo) ListByIDs(_ context.Context, ids []int64) (map[int64]domain.Sector, error) {
	result := map[int64]domain.Sector{}
	for _, id := range ids {
		if sector, ok := f.sectors[id]; ok {
			result[id] = sector
		}
	}
	return result, nil
}

func (f *fakeSectorRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.sectors[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.sectors, id)
	return nil
}

func (f *fakeSectorRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.sectors[id]
	return ok, nil
}

type fakeUserRepo struct {
	users  map[int64]domain.User
	nextID int64
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[int64]domain.User{}}
	for _, user := range users {
		repo.users[user.ID] = user
		if user.ID > repo.nextID {
			repo.nextID = user.ID
		}
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.nextID++
	user.ID = f.nextID
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			userCopy := user
			return &userCopy, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	result := make([]domain.User, 0, len(f.users))
	for _, user := range f.users {
		result = append(result, user)
	}
	return result, nil
}

func (f *fakeUserRepo) ListByIDs(_ context.Context, ids []int64) (map[int64]domain.User, error) {
	result := map[int64]domain.User{}
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			result[id] = user
		}
	}
	return result, nil
}

type fakeAttendantRepo struct {
	attendants map[int64]domain.Attendant
	nextID     int64
}

func newFakeAttendantRepo(attendants ...domain.Attendant) *fakeAttendantRepo {
	repo := &fakeAttendantRepo{attendants: map[int64]domain.Attendant{}}
	for _, attendant := range attendants {
		repo.attendants[attendant.ID] = attendant
		if attendant.ID > repo.nextID {
			repo.nextID = attendant.ID
		}
	}
	return repo
}

func (f *fakeAttendantRepo) Create(_ context.Context, attendant *domain.Attendant) error {
	f.nextID++
	attendant.ID = f.nextID
	now := time.Now()
	attendant.CreatedAt = now
	attendant.UpdatedAt = now
	f.attendants[attendant.ID] = *attendant
	return nil
}

func (f *fakeAttendantRepo) Update(_ context.Context, attendant *domain.Attendant) error {
	if _, ok := f.attendants[attendant.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.attendants[attendant.ID] = *attendant
	return nil
}

func (f *fakeAttendantRepo) GetByID(_ context.Context, id int64) (*domain.Attendant, error) {
	attendant, ok := f.attendants[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &attendant, nil
}

func (f *fakeAttendantRepo) GetByUserID(_ context.Context, userID int64) (*domain.Attendant, error) {
	for _, attendant := range f.attendants {
		if attendant.UserID != nil && *attendant.UserID == userID {
			attendantCopy := attendant
			return &attendantCopy, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAttendantRepo) List(_ context.Context) ([]domain.Attendant, error) {
	result := make([]domain.Attendant, 0, len(f.attendants))
	for _, attendant := range f.attendants {
		result = append(result, attendant)
	}
	return result, nil
}

func (f *fakeAttendantRepo) ListByIDs(_ context.Context, ids []int64) (map[int64]domain.Attendant, error) {
	result := map[int64]domain.Attendant{}
	for _, id := range ids {
		if attendant, ok := f.attendants[id]; ok {
			result[id] = attendant
		}
	}
	return result, nil
}

func (f *fakeAttendantRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.attendants[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.attendants, id)
	return nil
}

type fakeLinkRepo struct {
	links  map[int64]domain.SectorAttendant
	nextID int64
}

func newFakeLinkRepo(links ...domain.SectorAttendant) *fakeLinkRepo {
	repo := &fakeLinkRepo{links: map[int64]domain.SectorAttendant{}}
	for _, link := range links {
		repo.links[link.ID] = link
		if link.ID > repo.nextID {
			repo.nextID = link.ID
		}
	}
	return repo
}

func (f *fakeLinkRepo) Create(_ context.Context, link *domain.SectorAttendant) error {
	f.nextID++
	link.ID = f.nextID
	now := time.Now()
	link.CreatedAt = now
	link.UpdatedAt = now
	f.links[link.ID] = *link
	return nil
}

func (f *fakeLinkRepo) Update(_ context.Context, link *domain.SectorAttendant) error {
	if _, ok := f.links[link.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.links[link.ID] = *link
	return nil
}

func (f *fakeLinkRepo) GetByID(_ context.Context, id int64) (*domain.SectorAttendant, error) {
	link, ok := f.links[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &link, nil
}

func (f *fakeLinkRepo) FirstByAttendant(_ context.Context, attendantID int64) (*domain.SectorAttendant, error) {
	var first *domain.SectorAttendant
	for _, link := range f.links {
		if link.AttendantID != attendantID {
			continue
		}
		if first == nil || link.ID < first.ID {
			linkCopy := link
			first = &linkCopy
		}
	}
	if first == nil {
		return nil, pgx.ErrNoRows
	}
	return first, nil
}

func (f *fakeLinkRepo) ListSectorIDsByAttendant(_ context.Context, attendantID int64) ([]int64, error) {
	ids := []int64{}
	for _, link := range f.links {
		if link.AttendantID == attendantID {
			ids = append(ids, link.SectorID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeLinkRepo) List(_ context.Context) ([]domain.SectorAttendant, error) {
	result := make([]domain.SectorAttendant, 0, len(f.links))
	for _, link := range f.links {
		result = append(result, link)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeLinkRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.links[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.links, id)
	return nil
}

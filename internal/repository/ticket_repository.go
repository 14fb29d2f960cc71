package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suportehub/chamados-service/internal/domain"
)

// TicketFilter captures listing parameters. ScopeSectorIDs, when non-empty,
// restricts results to those sectors and wins over SectorID.
type TicketFilter struct {
	Status         *domain.TicketStatus
	SectorID       *int64
	Priority       *domain.TicketPriority
	ScopeSectorIDs []int64
	Limit          int
	Offset         int
}

// TicketRepository encapsulates ticket persistence. Mutations carry their
// audit entry and commit both rows in one transaction.
type TicketRepository interface {
	CreateWithHistory(ctx context.Context, ticket *domain.Ticket, entry *domain.TicketHistory) error
	UpdateWithHistory(ctx context.Context, ticket *domain.Ticket, entry *domain.TicketHistory) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, int64, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, title, description, status, priority, sector_id, requester_id,
               attendant_id, started_at, ended_at, notes, created_at, updated_at`

func (r *ticketRepository) CreateWithHistory(ctx context.Context, ticket *domain.Ticket, entry *domain.TicketHistory) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO tickets (title, description, status, priority, sector_id, requester_id, attendant_id, started_at, ended_at, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.SectorID,
		ticket.RequesterID,
		ticket.AttendantID,
		ticket.StartedAt,
		ticket.EndedAt,
		ticket.Notes,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt); err != nil {
		return err
	}

	entry.TicketID = ticket.ID
	if err := insertHistory(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ticketRepository) UpdateWithHistory(ctx context.Context, ticket *domain.Ticket, entry *domain.TicketHistory) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE tickets SET title=$1, description=$2, status=$3, priority=$4, sector_id=$5,
            attendant_id=$6, started_at=$7, ended_at=$8, notes=$9, updated_at=NOW()
        WHERE id=$10
        RETURNING updated_at`
	if err := tx.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.SectorID,
		ticket.AttendantID,
		ticket.StartedAt,
		ticket.EndedAt,
		ticket.Notes,
		ticket.ID,
	).Scan(&ticket.UpdatedAt); err != nil {
		return err
	}

	entry.TicketID = ticket.ID
	entry.NewData = ticket.Snapshot()
	if err := insertHistory(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1`, ticketColumns)
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.SectorID,
		&ticket.RequesterID,
		&ticket.AttendantID,
		&ticket.StartedAt,
		&ticket.EndedAt,
		&ticket.Notes,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority=$%d", len(args)))
	}
	if len(filter.ScopeSectorIDs) > 0 {
		placeholders := make([]string, len(filter.ScopeSectorIDs))
		for i, sectorID := range filter.ScopeSectorIDs {
			args = append(args, sectorID)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("sector_id IN (%s)", strings.Join(placeholders, ",")))
	} else if filter.SectorID != nil {
		args = append(args, *filter.SectorID)
		clauses = append(clauses, fmt.Sprintf("sector_id=$%d", len(args)))
	}

	where := strings.Join(clauses, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM tickets WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		ticketColumns, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tickets, err := scanTickets(rows)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Status,
			&ticket.Priority,
			&ticket.SectorID,
			&ticket.RequesterID,
			&ticket.AttendantID,
			&ticket.StartedAt,
			&ticket.EndedAt,
			&ticket.Notes,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func insertHistory(ctx context.Context, tx pgx.Tx, entry *domain.TicketHistory) error {
	const query = `
        INSERT INTO ticket_history (ticket_id, user_id, action, description, previous_data, new_data)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return tx.QueryRow(ctx, query,
		entry.TicketID,
		entry.UserID,
		entry.Action,
		entry.Description,
		entry.PreviousData,
		entry.NewData,
	).Scan(&entry.ID, &entry.CreatedAt)
}

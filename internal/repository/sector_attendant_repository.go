package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suportehub/chamados-service/internal/domain"
)

// SectorAttendantRepository encapsulates sector-attendant assignments.
type SectorAttendantRepository interface {
	Create(ctx context.Context, link *domain.SectorAttendant) error
	Update(ctx context.Context, link *domain.SectorAttendant) error
	GetByID(ctx context.Context, id int64) (*domain.SectorAttendant, error)
	FirstByAttendant(ctx context.Context, attendantID int64) (*domain.SectorAttendant, error)
	ListSectorIDsByAttendant(ctx context.Context, attendantID int64) ([]int64, error)
	List(ctx context.Context) ([]domain.SectorAttendant, error)
	Delete(ctx context.Context, id int64) error
}

type sectorAttendantRepository struct {
	pool *pgxpool.Pool
}

// NewSectorAttendantRepository instantiates repository.
func NewSectorAttendantRepository(pool *pgxpool.Pool) SectorAttendantRepository {
	return &sectorAttendantRepository{pool: pool}
}

func (r *sectorAttendantRepository) Create(ctx context.Context, link *domain.SectorAttendant) error {
	const query = `
        INSERT INTO sector_attendants (sector_id, attendant_id, is_manager)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		link.SectorID,
		link.AttendantID,
		link.IsManager,
	).Scan(&link.ID, &link.CreatedAt, &link.UpdatedAt)
}

func (r *sectorAttendantRepository) Update(ctx context.Context, link *domain.SectorAttendant) error {
	const query = `
        UPDATE sector_attendants SET sector_id=$1, attendant_id=$2, is_manager=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		link.SectorID,
		link.AttendantID,
		link.IsManager,
		link.ID,
	).Scan(&link.UpdatedAt)
}

func (r *sectorAttendantRepository) GetByID(ctx context.Context, id int64) (*domain.SectorAttendant, error) {
	const query = `
        SELECT id, sector_id, attendant_id, is_manager, created_at, updated_at
        FROM sector_attendants WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

// FirstByAttendant returns the oldest assignment for an attendant, which is
// the row the attendant-write side effect updates.
func (r *sectorAttendantRepository) FirstByAttendant(ctx context.Context, attendantID int64) (*domain.SectorAttendant, error) {
	const query = `
        SELECT id, sector_id, attendant_id, is_manager, created_at, updated_at
        FROM sector_attendants WHERE attendant_id=$1 ORDER BY id LIMIT 1`
	return r.fetchSingle(ctx, query, attendantID)
}

func (r *sectorAttendantRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.SectorAttendant, error) {
	var link domain.SectorAttendant
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&link.ID,
		&link.SectorID,
		&link.AttendantID,
		&link.IsManager,
		&link.CreatedAt,
		&link.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *sectorAttendantRepository) ListSectorIDsByAttendant(ctx context.Context, attendantID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT sector_id FROM sector_attendants WHERE attendant_id=$1 ORDER BY id`, attendantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []int64
	for rows.Next() {
		var sectorID int64
		if err := rows.Scan(&sectorID); err != nil {
			return nil, err
		}
		result = append(result, sectorID)
	}
	return result, rows.Err()
}

func (r *sectorAttendantRepository) List(ctx context.Context) ([]domain.SectorAttendant, error) {
	const query = `
        SELECT id, sector_id, attendant_id, is_manager, created_at, updated_at
        FROM sector_attendants ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SectorAttendant
	for rows.Next() {
		var link domain.SectorAttendant
		if err := rows.Scan(
			&link.ID,
			&link.SectorID,
			&link.AttendantID,
			&link.IsManager,
			&link.CreatedAt,
			&link.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, link)
	}
	return result, rows.Err()
}

func (r *sectorAttendantRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sector_attendants WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

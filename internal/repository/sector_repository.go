package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suportehub/chamados-service/internal/domain"
)

// SectorRepository encapsulates sector persistence.
type SectorRepository interface {
	Create(ctx context.Context, sector *domain.Sector) error
	Update(ctx context.Context, sector *domain.Sector) error
	GetByID(ctx context.Context, id int64) (*domain.Sector, error)
	List(ctx context.Context) ([]domain.Sector, error)
	ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.Sector, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type sectorRepository struct {
	pool *pgxpool.Pool
}

// NewSectorRepository instantiates repository.
func NewSectorRepository(pool *pgxpool.Pool) SectorRepository {
	return &sectorRepository{pool: pool}
}

const sectorColumns = `id, cost_center_id, name, description, code, created_at, updated_at`

func (r *sectorRepository) Create(ctx context.Context, sector *domain.Sector) error {
	const query = `
        INSERT INTO sectors (cost_center_id, name, description, code)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		sector.CostCenterID,
		sector.Name,
		sector.Description,
		sector.Code,
	).Scan(&sector.ID, &sector.CreatedAt, &sector.UpdatedAt)
}

func (r *sectorRepository) Update(ctx context.Context, sector *domain.Sector) error {
	const query = `
        UPDATE sectors SET cost_center_id=$1, name=$2, description=$3, code=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		sector.CostCenterID,
		sector.Name,
		sector.Description,
		sector.Code,
		sector.ID,
	).Scan(&sector.UpdatedAt)
}

func (r *sectorRepository) GetByID(ctx context.Context, id int64) (*domain.Sector, error) {
	query := fmt.Sprintf(`SELECT %s FROM sectors WHERE id=$1`, sectorColumns)
	var sector domain.Sector
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&sector.ID,
		&sector.CostCenterID,
		&sector.Name,
		&sector.Description,
		&sector.Code,
		&sector.CreatedAt,
		&sector.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sector, nil
}

func (r *sectorRepository) List(ctx context.Context) ([]domain.Sector, error) {
	query := fmt.Sprintf(`SELECT %s FROM sectors ORDER BY id`, sectorColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSectors(rows)
}

func (r *sectorRepository) ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.Sector, error) {
	result := make(map[int64]domain.Sector, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT %s FROM sectors WHERE id IN (%s)`, sectorColumns, strings.Join(placeholders, ","))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sectors, err := scanSectors(rows)
	if err != nil {
		return nil, err
	}
	for _, sector := range sectors {
		result[sector.ID] = sector
	}
	return result, nil
}

func (r *sectorRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sectors WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sectorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM sectors WHERE id=$1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanSectors(rows pgx.Rows) ([]domain.Sector, error) {
	var result []domain.Sector
	for rows.Next() {
		var sector domain.Sector
		if err := rows.Scan(
			&sector.ID,
			&sector.CostCenterID,
			&sector.Name,
			&sector.Description,
			&sector.Code,
			&sector.CreatedAt,
			&sector.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, sector)
	}
	return result, rows.Err()
}

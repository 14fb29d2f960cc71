package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suportehub/chamados-service/internal/domain"
)

// CostCenterRepository encapsulates cost center persistence.
type CostCenterRepository interface {
	Create(ctx context.Context, cc *domain.CostCenter) error
	Update(ctx context.Context, cc *domain.CostCenter) error
	GetByID(ctx context.Context, id int64) (*domain.CostCenter, error)
	List(ctx context.Context) ([]domain.CostCenter, error)
	Delete(ctx context.Context, id int64) error
}

type costCenterRepository struct {
	pool *pgxpool.Pool
}

// NewCostCenterRepository instantiates repository.
func NewCostCenterRepository(pool *pgxpool.Pool) CostCenterRepository {
	return &costCenterRepository{pool: pool}
}

func (r *costCenterRepository) Create(ctx context.Context, cc *domain.CostCenter) error {
	const query = `
        INSERT INTO cost_centers (name, description, code)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, cc.Name, cc.Description, cc.Code).
		Scan(&cc.ID, &cc.CreatedAt, &cc.UpdatedAt)
}

func (r *costCenterRepository) Update(ctx context.Context, cc *domain.CostCenter) error {
	const query = `
        UPDATE cost_centers SET name=$1, description=$2, code=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query, cc.Name, cc.Description, cc.Code, cc.ID).
		Scan(&cc.UpdatedAt)
}

func (r *costCenterRepository) GetByID(ctx context.Context, id int64) (*domain.CostCenter, error) {
	const query = `
        SELECT id, name, description, code, created_at, updated_at
        FROM cost_centers WHERE id=$1`
	var cc domain.CostCenter
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&cc.ID,
		&cc.Name,
		&cc.Description,
		&cc.Code,
		&cc.CreatedAt,
		&cc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &cc, nil
}

func (r *costCenterRepository) List(ctx context.Context) ([]domain.CostCenter, error) {
	const query = `
        SELECT id, name, description, code, created_at, updated_at
        FROM cost_centers ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CostCenter
	for rows.Next() {
		var cc domain.CostCenter
		if err := rows.Scan(&cc.ID, &cc.Name, &cc.Description, &cc.Code, &cc.CreatedAt, &cc.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, cc)
	}
	return result, rows.Err()
}

func (r *costCenterRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cost_centers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

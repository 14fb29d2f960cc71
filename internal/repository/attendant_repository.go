package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suportehub/chamados-service/internal/domain"
)

// AttendantRepository encapsulates attendant persistence.
type AttendantRepository interface {
	Create(ctx context.Context, attendant *domain.Attendant) error
	Update(ctx context.Context, attendant *domain.Attendant) error
	GetByID(ctx context.Context, id int64) (*domain.Attendant, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Attendant, error)
	List(ctx context.Context) ([]domain.Attendant, error)
	ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.Attendant, error)
	Delete(ctx context.Context, id int64) error
}

type attendantRepository struct {
	pool *pgxpool.Pool
}

// NewAttendantRepository instantiates repository.
func NewAttendantRepository(pool *pgxpool.Pool) AttendantRepository {
	return &attendantRepository{pool: pool}
}

const attendantColumns = `id, name, email, phone, user_id, created_at, updated_at`

func (r *attendantRepository) Create(ctx context.Context, attendant *domain.Attendant) error {
	const query = `
        INSERT INTO attendants (name, email, phone, user_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		attendant.Name,
		attendant.Email,
		attendant.Phone,
		attendant.UserID,
	).Scan(&attendant.ID, &attendant.CreatedAt, &attendant.UpdatedAt)
}

func (r *attendantRepository) Update(ctx context.Context, attendant *domain.Attendant) error {
	const query = `
        UPDATE attendants SET name=$1, email=$2, phone=$3, user_id=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		attendant.Name,
		attendant.Email,
		attendant.Phone,
		attendant.UserID,
		attendant.ID,
	).Scan(&attendant.UpdatedAt)
}

func (r *attendantRepository) GetByID(ctx context.Context, id int64) (*domain.Attendant, error) {
	query := fmt.Sprintf(`SELECT %s FROM attendants WHERE id=$1`, attendantColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *attendantRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Attendant, error) {
	query := fmt.Sprintf(`SELECT %s FROM attendants WHERE user_id=$1`, attendantColumns)
	return r.fetchSingle(ctx, query, userID)
}

func (r *attendantRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Attendant, error) {
	var attendant domain.Attendant
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&attendant.ID,
		&attendant.Name,
		&attendant.Email,
		&attendant.Phone,
		&attendant.UserID,
		&attendant.CreatedAt,
		&attendant.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &attendant, nil
}

func (r *attendantRepository) List(ctx context.Context) ([]domain.Attendant, error) {
	query := fmt.Sprintf(`SELECT %s FROM attendants ORDER BY id`, attendantColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttendants(rows)
}

func (r *attendantRepository) ListByIDs(ctx context.Context, ids []int64) (map[int64]domain.Attendant, error) {
	result := make(map[int64]domain.Attendant, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT %s FROM attendants WHERE id IN (%s)`, attendantColumns, strings.Join(placeholders, ","))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendants, err := scanAttendants(rows)
	if err != nil {
		return nil, err
	}
	for _, attendant := range attendants {
		result[attendant.ID] = attendant
	}
	return result, nil
}

func (r *attendantRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM attendants WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanAttendants(rows pgx.Rows) ([]domain.Attendant, error) {
	var result []domain.Attendant
	for rows.Next() {
		var attendant domain.Attendant
		if err := rows.Scan(
			&attendant.ID,
			&attendant.Name,
			&attendant.Email,
			&attendant.Phone,
			&attendant.UserID,
			&attendant.CreatedAt,
			&attendant.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, attendant)
	}
	return result, rows.Err()
}

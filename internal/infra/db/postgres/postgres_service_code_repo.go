package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"provider-network-pricing/internal/domain"
	"provider-network-pricing/internal/domain/model"
	"provider-network-pricing/internal/domain/ports/repository"
)

var _ repository.ServiceCodeRepository = (*serviceCodeRepo)(nil)

type serviceCodeRepo struct {
	pool *pgxpool.Pool
}

func NewServiceCodeRepo(pool *pgxpool.Pool) *serviceCodeRepo {
	return &serviceCodeRepo{pool: pool}
}

func (r *serviceCodeRepo) Create(ctx context.Context, tx repository.Tx, c *model.ServiceCode) error {
	const q = `
INSERT INTO service_codes (code, description, category, created_at)
VALUES ($1, $2, $3, NOW());`
	_, err := execSQL(ctx, r.pool, tx, q, c.Code, c.Description, c.Category)
	if pgErrCode(err) == sqlStateUniqueViolation {
		return domain.ErrCodeExists
	}
	return err
}

func (r *serviceCodeRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.ServiceCode, error) {
	const q = `SELECT code, description, category FROM service_codes WHERE code=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, code)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	var c model.ServiceCode
	if err := row.Scan(&c.Code, &c.Description, &c.Category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &c, nil
}

func (r *serviceCodeRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.ServiceCode, error) {
	const q = `SELECT code, description, category FROM service_codes ORDER BY code ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.ServiceCode
	for rows.Next() {
		var c model.ServiceCode
		if err := rows.Scan(&c.Code, &c.Description, &c.Category); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &c)
	}
	if rows.Err() != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

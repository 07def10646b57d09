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

var _ repository.ProviderRepository = (*providerRepo)(nil)

type providerRepo struct {
	pool *pgxpool.Pool
}

func NewProviderRepo(pool *pgxpool.Pool) *providerRepo {
	return &providerRepo{pool: pool}
}

func (r *providerRepo) Create(ctx context.Context, tx repository.Tx, p *model.Provider) error {
	const q = `
INSERT INTO providers (id, principal, name, specialty, license_number, license_expiry, is_verified, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW());`
	_, err := execSQL(ctx, r.pool, tx, q, p.ID, p.Principal, p.Name, p.Specialty, p.LicenseNumber, p.LicenseExpiry, p.Verified)
	if pgErrCode(err) == sqlStateUniqueViolation {
		return domain.ErrProviderExists
	}
	return err
}

func (r *providerRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Provider, error) {
	const q = `
SELECT id, principal, name, specialty, license_number, license_expiry, is_verified
  FROM providers WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	var p model.Provider
	if err := row.Scan(&p.ID, &p.Principal, &p.Name, &p.Specialty, &p.LicenseNumber, &p.LicenseExpiry, &p.Verified); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &p, nil
}

func (r *providerRepo) SetVerified(ctx context.Context, tx repository.Tx, id string, verified bool) error {
	tag, err := execSQL(ctx, r.pool, tx, `UPDATE providers SET is_verified=$2 WHERE id=$1;`, id, verified)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

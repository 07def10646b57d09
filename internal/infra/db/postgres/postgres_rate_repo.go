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

var _ repository.RateRepository = (*rateRepo)(nil)

// rateRepo stores the two rate tables. Each upsert is a single
// INSERT ... ON CONFLICT statement, so concurrent writers to one key
// serialize on the row and the last commit wins.
type rateRepo struct {
	pool *pgxpool.Pool
}

func NewRateRepo(pool *pgxpool.Pool) *rateRepo {
	return &rateRepo{pool: pool}
}

func (r *rateRepo) UpsertDefault(ctx context.Context, tx repository.Tx, rec *model.DefaultNetworkRate) error {
	rate, eff, exp, err := entryArgs(rec.RateEntry)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO default_network_rates (network_id, code, rate, effective_date, expiry_date, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW())
ON CONFLICT (network_id, code) DO UPDATE SET
  rate           = EXCLUDED.rate,
  effective_date = EXCLUDED.effective_date,
  expiry_date    = EXCLUDED.expiry_date,
  updated_at     = EXCLUDED.updated_at;`
	_, err = execSQL(ctx, r.pool, tx, q, rec.NetworkID, rec.Code, rate, eff, exp)
	return mapRateWriteErr(err)
}

func (r *rateRepo) UpsertProvider(ctx context.Context, tx repository.Tx, rec *model.ProviderRate) error {
	rate, eff, exp, err := entryArgs(rec.RateEntry)
	if err != nil {
		return err
	}
	neg, err := toBigint(uint64(rec.NegotiatedDate))
	if err != nil {
		return err
	}
	const q = `
INSERT INTO provider_rates (network_id, provider_id, code, rate, effective_date, expiry_date, negotiated_date, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
ON CONFLICT (network_id, provider_id, code) DO UPDATE SET
  rate            = EXCLUDED.rate,
  effective_date  = EXCLUDED.effective_date,
  expiry_date     = EXCLUDED.expiry_date,
  negotiated_date = EXCLUDED.negotiated_date,
  updated_at      = EXCLUDED.updated_at;`
	_, err = execSQL(ctx, r.pool, tx, q, rec.NetworkID, rec.ProviderID, rec.Code, rate, eff, exp, neg)
	return mapRateWriteErr(err)
}

func (r *rateRepo) FindDefault(ctx context.Context, tx repository.Tx, key model.DefaultRateKey) (*model.DefaultNetworkRate, error) {
	const q = `
SELECT rate, effective_date, expiry_date
  FROM default_network_rates
 WHERE network_id=$1 AND code=$2;`
	row, err := pickRow(ctx, r.pool, tx, q, key.NetworkID, key.Code)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	var rate, eff, exp int64
	if err := row.Scan(&rate, &eff, &exp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &model.DefaultNetworkRate{
		DefaultRateKey: key,
		RateEntry:      scanEntry(rate, eff, exp),
	}, nil
}

func (r *rateRepo) FindProvider(ctx context.Context, tx repository.Tx, key model.ProviderRateKey) (*model.ProviderRate, error) {
	const q = `
SELECT rate, effective_date, expiry_date, negotiated_date
  FROM provider_rates
 WHERE network_id=$1 AND provider_id=$2 AND code=$3;`
	row, err := pickRow(ctx, r.pool, tx, q, key.NetworkID, key.ProviderID, key.Code)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	var rate, eff, exp, neg int64
	if err := row.Scan(&rate, &eff, &exp, &neg); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &model.ProviderRate{
		ProviderRateKey: key,
		RateEntry:       scanEntry(rate, eff, exp),
		NegotiatedDate:  model.LogicalTime(neg),
	}, nil
}

func entryArgs(e model.RateEntry) (rate, eff, exp int64, err error) {
	if rate, err = toBigint(e.Rate); err != nil {
		return
	}
	if eff, err = toBigint(uint64(e.Effective)); err != nil {
		return
	}
	exp, err = toBigint(uint64(e.Expiry))
	return
}

func scanEntry(rate, eff, exp int64) model.RateEntry {
	return model.RateEntry{
		Rate: uint64(rate),
		Window: model.Window{
			Effective: model.LogicalTime(eff),
			Expiry:    model.LogicalTime(exp),
		},
	}
}

// The code column references service_codes, so a missing code surfaces as a
// foreign key violation even outside the use-case check.
func mapRateWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if pgErrCode(err) == sqlStateForeignKeyViolation {
		return domain.ErrCodeNotFound
	}
	return err
}

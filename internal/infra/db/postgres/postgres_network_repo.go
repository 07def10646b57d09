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

var _ repository.NetworkRepository = (*networkRepo)(nil)

type networkRepo struct {
	pool *pgxpool.Pool
}

func NewNetworkRepo(pool *pgxpool.Pool) *networkRepo {
	return &networkRepo{pool: pool}
}

func (r *networkRepo) Create(ctx context.Context, tx repository.Tx, n *model.Network) error {
	const q = `
INSERT INTO networks (id, name, description, active, created_at)
VALUES ($1, $2, $3, $4, NOW());`
	_, err := execSQL(ctx, r.pool, tx, q, n.ID, n.Name, n.Description, n.Active)
	if pgErrCode(err) == sqlStateUniqueViolation {
		return domain.ErrNetworkExists
	}
	return err
}

func (r *networkRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Network, error) {
	const q = `SELECT id, name, description, active FROM networks WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	var n model.Network
	if err := row.Scan(&n.ID, &n.Name, &n.Description, &n.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &n, nil
}

func (r *networkRepo) AddMember(ctx context.Context, tx repository.Tx, m *model.NetworkProvider) error {
	join, err := toBigint(uint64(m.JoinDate))
	if err != nil {
		return err
	}
	const q = `
INSERT INTO network_providers (network_id, provider_id, join_date, status, tier)
VALUES ($1, $2, $3, $4, $5);`
	_, err = execSQL(ctx, r.pool, tx, q, m.NetworkID, m.ProviderID, join, string(m.Status), m.Tier)
	switch pgErrCode(err) {
	case sqlStateUniqueViolation:
		return domain.ErrProviderExists
	case sqlStateForeignKeyViolation:
		return domain.ErrNetworkNotFound
	}
	return err
}

func (r *networkRepo) FindMember(ctx context.Context, tx repository.Tx, networkID, providerID string) (*model.NetworkProvider, error) {
	const q = `
SELECT join_date, status, tier
  FROM network_providers
 WHERE network_id=$1 AND provider_id=$2;`
	row, err := pickRow(ctx, r.pool, tx, q, networkID, providerID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	m := model.NetworkProvider{NetworkID: networkID, ProviderID: providerID}
	var join int64
	var status string
	if err := row.Scan(&join, &status, &m.Tier); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	m.JoinDate = model.LogicalTime(join)
	m.Status = model.MembershipStatus(status)
	return &m, nil
}

func (r *networkRepo) UpdateMemberStatus(ctx context.Context, tx repository.Tx, networkID, providerID string, status model.MembershipStatus) error {
	const q = `UPDATE network_providers SET status=$3 WHERE network_id=$1 AND provider_id=$2;`
	tag, err := execSQL(ctx, r.pool, tx, q, networkID, providerID, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package repository

import (
	"context"

	"provider-network-pricing/internal/domain/model"
)

// RateRepository owns the two rate tables. Both upserts fully replace the
// entry stored under their key.
type RateRepository interface {
	UpsertDefault(ctx context.Context, tx Tx, r *model.DefaultNetworkRate) error
	UpsertProvider(ctx context.Context, tx Tx, r *model.ProviderRate) error

	// Find* return domain.ErrNotFound when nothing was ever set for the key.
	FindDefault(ctx context.Context, tx Tx, key model.DefaultRateKey) (*model.DefaultNetworkRate, error)
	FindProvider(ctx context.Context, tx Tx, key model.ProviderRateKey) (*model.ProviderRate, error)
}

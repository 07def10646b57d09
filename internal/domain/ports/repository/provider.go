package repository

import (
	"context"

	"provider-network-pricing/internal/domain/model"
)

type ProviderRepository interface {
	// Create returns domain.ErrProviderExists on duplicates.
	Create(ctx context.Context, tx Tx, p *model.Provider) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Provider, error)
	// SetVerified returns domain.ErrNotFound for unknown providers.
	SetVerified(ctx context.Context, tx Tx, id string, verified bool) error
}

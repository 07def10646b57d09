package repository

import (
	"context"

	"provider-network-pricing/internal/domain/model"
)

// ServiceCodeRepository is the port for the service catalog.
type ServiceCodeRepository interface {
	// Create inserts a code. Returns domain.ErrCodeExists if already registered.
	Create(ctx context.Context, tx Tx, c *model.ServiceCode) error
	// FindByCode returns domain.ErrNotFound when the code is unregistered.
	FindByCode(ctx context.Context, tx Tx, code string) (*model.ServiceCode, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.ServiceCode, error)
}

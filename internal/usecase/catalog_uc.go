package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"provider-network-pricing/internal/domain"
	"provider-network-pricing/internal/domain/model"
	"provider-network-pricing/internal/domain/ports/repository"
)

// CatalogUseCase is the registry of valid service codes. Registration is
// create-once: a second AddCode for the same code always fails.
type CatalogUseCase interface {
	// AddCode returns domain.ErrCodeExists when the code is already registered,
	// regardless of the description or category passed.
	AddCode(ctx context.Context, code, description, category string) (*model.ServiceCode, error)

	// GetCode reports ok=false for unregistered codes.
	GetCode(ctx context.Context, code string) (*model.ServiceCode, bool, error)

	// ListCodes returns every registered code ordered by code.
	ListCodes(ctx context.Context) ([]*model.ServiceCode, error)
}

var _ CatalogUseCase = (*catalogUC)(nil)

type catalogUC struct {
	codes repository.ServiceCodeRepository
	tx    repository.TransactionManager
	log   *zerolog.Logger
}

// NewCatalogUseCase wires the catalog. tx and logger may be nil.
func NewCatalogUseCase(codes repository.ServiceCodeRepository, tx repository.TransactionManager, logger *zerolog.Logger) CatalogUseCase {
	return &catalogUC{
		codes: codes,
		tx:    tx,
		log:   componentLogger(logger, "CatalogUC"),
	}
}

func (c *catalogUC) AddCode(ctx context.Context, code, description, category string) (*model.ServiceCode, error) {
	sc, err := model.NewServiceCode(code, description, category)
	if err != nil {
		return nil, err
	}
	err = runTx(ctx, c.tx, func(ctx context.Context, tx repository.Tx) error {
		existing, err := c.codes.FindByCode(ctx, tx, sc.Code)
		switch {
		case err == nil && existing != nil:
			return domain.ErrCodeExists
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return err
		}
		return c.codes.Create(ctx, tx, sc)
	})
	if err != nil {
		c.log.Warn().Err(err).Str("code", sc.Code).Msg("add service code rejected")
		return nil, err
	}
	c.log.Info().Str("code", sc.Code).Str("category", sc.Category).Msg("service code registered")
	return sc, nil
}

func (c *catalogUC) GetCode(ctx context.Context, code string) (*model.ServiceCode, bool, error) {
	return found(c.codes.FindByCode(ctx, repository.NoTX, model.NormalizeCode(code)))
}

func (c *catalogUC) ListCodes(ctx context.Context) ([]*model.ServiceCode, error) {
	return c.codes.ListAll(ctx, repository.NoTX)
}

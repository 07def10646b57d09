package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"provider-network-pricing/internal/domain"
	"provider-network-pricing/internal/domain/model"
	"provider-network-pricing/internal/domain/ports/repository"
)

// RegisterProviderInput carries the registration metadata. None of it is
// interpreted by the pricing core.
type RegisterProviderInput struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Specialty     string `json:"specialty" yaml:"specialty"`
	LicenseNumber string `json:"license_number" yaml:"license_number"`
	LicenseExpiry int64  `json:"license_expiry" yaml:"license_expiry"`
}

type ProviderUseCase interface {
	// Register returns domain.ErrProviderExists on duplicates. principal is the
	// caller identity and is stored as-is.
	Register(ctx context.Context, principal string, in RegisterProviderInput) (*model.Provider, error)
	// Verify returns domain.ErrProviderNotFound for unknown providers.
	Verify(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*model.Provider, bool, error)
	IsVerified(ctx context.Context, id string) (bool, error)
}

var _ ProviderUseCase = (*providerUC)(nil)

type providerUC struct {
	providers repository.ProviderRepository
	log       *zerolog.Logger
}

func NewProviderUseCase(providers repository.ProviderRepository, logger *zerolog.Logger) ProviderUseCase {
	return &providerUC{providers: providers, log: componentLogger(logger, "ProviderUC")}
}

func (p *providerUC) Register(ctx context.Context, principal string, in RegisterProviderInput) (*model.Provider, error) {
	pr, err := model.NewProvider(in.ID, principal, in.Name, in.Specialty, in.LicenseNumber, in.LicenseExpiry)
	if err != nil {
		return nil, err
	}
	if err := p.providers.Create(ctx, repository.NoTX, pr); err != nil {
		p.log.Warn().Err(err).Str("provider_id", pr.ID).Msg("register provider rejected")
		return nil, err
	}
	p.log.Info().Str("provider_id", pr.ID).Str("specialty", pr.Specialty).Msg("provider registered")
	return pr, nil
}

func (p *providerUC) Verify(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	err := p.providers.SetVerified(ctx, repository.NoTX, id, true)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrProviderNotFound
	}
	if err != nil {
		return err
	}
	p.log.Info().Str("provider_id", id).Msg("provider verified")
	return nil
}

func (p *providerUC) Get(ctx context.Context, id string) (*model.Provider, bool, error) {
	return found(p.providers.FindByID(ctx, repository.NoTX, strings.TrimSpace(id)))
}

func (p *providerUC) IsVerified(ctx context.Context, id string) (bool, error) {
	pr, ok, err := p.Get(ctx, id)
	if err != nil || !ok {
		return false, err
	}
	return pr.Verified, nil
}

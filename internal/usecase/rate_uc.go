package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"provider-network-pricing/internal/domain"
	"provider-network-pricing/internal/domain/model"
	"provider-network-pricing/internal/domain/ports/repository"
	"provider-network-pricing/internal/infra/metrics"
)

// RateUseCase writes and reads the default-network and provider-specific rate
// tables. Writes are upserts gated only on service-code existence; network,
// provider and window ordering are not checked.
type RateUseCase interface {
	// SetDefaultNetworkRate replaces the entry for (networkID, code).
	// Returns domain.ErrCodeNotFound when the code is unregistered.
	SetDefaultNetworkRate(ctx context.Context, networkID, code string, rate uint64, window model.Window) (*model.DefaultNetworkRate, error)

	// SetProviderRate replaces the entry for (networkID, providerID, code) and
	// stamps NegotiatedDate with now.
	// Returns domain.ErrCodeNotFound when the code is unregistered.
	SetProviderRate(ctx context.Context, now model.LogicalTime, networkID, providerID, code string, rate uint64, window model.Window) (*model.ProviderRate, error)

	GetDefaultNetworkRate(ctx context.Context, networkID, code string) (*model.DefaultNetworkRate, bool, error)
	GetProviderRate(ctx context.Context, networkID, providerID, code string) (*model.ProviderRate, bool, error)
}

var _ RateUseCase = (*rateUC)(nil)

type rateUC struct {
	rates repository.RateRepository
	codes repository.ServiceCodeRepository
	tx    repository.TransactionManager
	log   *zerolog.Logger
}

// NewRateUseCase wires the rate store. tx and logger may be nil.
func NewRateUseCase(
	rates repository.RateRepository,
	codes repository.ServiceCodeRepository,
	tx repository.TransactionManager,
	logger *zerolog.Logger,
) RateUseCase {
	return &rateUC{
		rates: rates,
		codes: codes,
		tx:    tx,
		log:   componentLogger(logger, "RateUC"),
	}
}

func (r *rateUC) SetDefaultNetworkRate(ctx context.Context, networkID, code string, rate uint64, window model.Window) (*model.DefaultNetworkRate, error) {
	rec := &model.DefaultNetworkRate{
		DefaultRateKey: model.DefaultRateKey{NetworkID: networkID, Code: model.NormalizeCode(code)},
		RateEntry:      model.RateEntry{Rate: rate, Window: window},
	}
	l := r.log.With().Str("network_id", networkID).Str("code", rec.Code).Logger()

	err := runTx(ctx, r.tx, func(ctx context.Context, tx repository.Tx) error {
		if err := r.requireCode(ctx, tx, rec.Code); err != nil {
			return err
		}
		return r.rates.UpsertDefault(ctx, tx, rec)
	})
	if err != nil {
		l.Warn().Err(err).Msg("set default network rate rejected")
		return nil, err
	}
	warnInvertedWindow(&l, window)
	metrics.IncRateWrite(string(model.RateSourceNetwork))
	l.Info().Uint64("rate", rate).Uint64("effective", uint64(window.Effective)).Uint64("expiry", uint64(window.Expiry)).Msg("default network rate set")
	return rec, nil
}

func (r *rateUC) SetProviderRate(ctx context.Context, now model.LogicalTime, networkID, providerID, code string, rate uint64, window model.Window) (*model.ProviderRate, error) {
	rec := &model.ProviderRate{
		ProviderRateKey: model.ProviderRateKey{NetworkID: networkID, ProviderID: providerID, Code: model.NormalizeCode(code)},
		RateEntry:       model.RateEntry{Rate: rate, Window: window},
		NegotiatedDate:  now,
	}
	l := r.log.With().Str("network_id", networkID).Str("provider_id", providerID).Str("code", rec.Code).Logger()

	err := runTx(ctx, r.tx, func(ctx context.Context, tx repository.Tx) error {
		if err := r.requireCode(ctx, tx, rec.Code); err != nil {
			return err
		}
		return r.rates.UpsertProvider(ctx, tx, rec)
	})
	if err != nil {
		l.Warn().Err(err).Msg("set provider rate rejected")
		return nil, err
	}
	warnInvertedWindow(&l, window)
	metrics.IncRateWrite(string(model.RateSourceProvider))
	l.Info().Uint64("rate", rate).Uint64("negotiated", uint64(now)).Msg("provider rate set")
	return rec, nil
}

func (r *rateUC) GetDefaultNetworkRate(ctx context.Context, networkID, code string) (*model.DefaultNetworkRate, bool, error) {
	key := model.DefaultRateKey{NetworkID: networkID, Code: model.NormalizeCode(code)}
	return found(r.rates.FindDefault(ctx, repository.NoTX, key))
}

func (r *rateUC) GetProviderRate(ctx context.Context, networkID, providerID, code string) (*model.ProviderRate, bool, error) {
	key := model.ProviderRateKey{NetworkID: networkID, ProviderID: providerID, Code: model.NormalizeCode(code)}
	return found(r.rates.FindProvider(ctx, repository.NoTX, key))
}

func (r *rateUC) requireCode(ctx context.Context, tx repository.Tx, code string) error {
	_, err := r.codes.FindByCode(ctx, tx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrCodeNotFound
	}
	return err
}

// An inverted window is stored as given; it simply never matches.
func warnInvertedWindow(l *zerolog.Logger, w model.Window) {
	if !w.Valid() {
		l.Warn().Uint64("effective", uint64(w.Effective)).Uint64("expiry", uint64(w.Expiry)).Msg("rate window is empty")
	}
}

package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"provider-network-pricing/internal/domain/model"
	"provider-network-pricing/internal/domain/ports/repository"
	"provider-network-pricing/internal/infra/metrics"
)

// ResolverUseCase computes the single rate that applies at a logical time.
type ResolverUseCase interface {
	// GetEffectiveRate returns ok=false when no rate applies. That outcome is
	// distinct from a rate of zero.
	GetEffectiveRate(ctx context.Context, networkID, providerID, code string, now model.LogicalTime) (model.EffectiveRate, bool, error)
}

var _ ResolverUseCase = (*resolverUC)(nil)

type resolverUC struct {
	rates repository.RateRepository
	log   *zerolog.Logger
}

func NewResolverUseCase(rates repository.RateRepository, logger *zerolog.Logger) ResolverUseCase {
	return &resolverUC{rates: rates, log: componentLogger(logger, "ResolverUC")}
}

// GetEffectiveRate applies scope precedence: a live provider-specific rate
// always wins over a live network default, whatever their windows look like.
func (r *resolverUC) GetEffectiveRate(ctx context.Context, networkID, providerID, code string, now model.LogicalTime) (model.EffectiveRate, bool, error) {
	key := model.ProviderRateKey{NetworkID: networkID, ProviderID: providerID, Code: model.NormalizeCode(code)}

	pr, ok, err := found(r.rates.FindProvider(ctx, repository.NoTX, key))
	if err != nil {
		return model.EffectiveRate{}, false, err
	}
	if ok && pr.LiveAt(now) {
		return r.hit(key, now, pr.RateEntry, model.RateSourceProvider), true, nil
	}

	dr, ok, err := found(r.rates.FindDefault(ctx, repository.NoTX, key.Default()))
	if err != nil {
		return model.EffectiveRate{}, false, err
	}
	if ok && dr.LiveAt(now) {
		return r.hit(key, now, dr.RateEntry, model.RateSourceNetwork), true, nil
	}

	metrics.IncRateResolution("none")
	r.log.Debug().Str("network_id", key.NetworkID).Str("provider_id", key.ProviderID).Str("code", key.Code).
		Uint64("now", uint64(now)).Msg("no applicable rate")
	return model.EffectiveRate{}, false, nil
}

func (r *resolverUC) hit(key model.ProviderRateKey, now model.LogicalTime, e model.RateEntry, src model.RateSource) model.EffectiveRate {
	metrics.IncRateResolution(string(src))
	r.log.Trace().Str("network_id", key.NetworkID).Str("provider_id", key.ProviderID).Str("code", key.Code).
		Uint64("now", uint64(now)).Str("source", string(src)).Uint64("rate", e.Rate).Msg("rate resolved")
	return model.EffectiveRate{Rate: e.Rate, Source: src, Window: e.Window}
}

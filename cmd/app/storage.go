package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"provider-network-pricing/internal/config"
	"provider-network-pricing/internal/domain/ports/repository"
	"provider-network-pricing/internal/infra/db/memory"
	pg "provider-network-pricing/internal/infra/db/postgres"
	"provider-network-pricing/internal/infra/metrics"
	red "provider-network-pricing/internal/infra/redis"
)

// storage bundles the repositories selected by storage.driver.
type storage struct {
	Codes     repository.ServiceCodeRepository
	Rates     repository.RateRepository
	Networks  repository.NetworkRepository
	Providers repository.ProviderRepository
	Tx        repository.TransactionManager

	// PoolStats is nil for the memory driver.
	PoolStats func() metrics.PoolStats

	closers []func()
}

func (s *storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStorage(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*storage, error) {
	st := &storage{}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		st.closers = append(st.closers, pool.Close)
		st.Codes = pg.NewServiceCodeRepo(pool)
		st.Rates = pg.NewRateRepo(pool)
		st.Networks = pg.NewNetworkRepo(pool)
		st.Providers = pg.NewProviderRepo(pool)
		st.Tx = pg.NewTxManager(pool)
		st.PoolStats = func() metrics.PoolStats { return pg.PoolStats(pool) }
	default:
		mem := memory.NewStore()
		st.Codes = mem.ServiceCodes()
		st.Rates = mem.Rates()
		st.Networks = mem.Networks()
		st.Providers = mem.Providers()
		st.Tx = mem.TxManager()
	}

	if cfg.Redis.URL != "" {
		cli, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		st.closers = append(st.closers, func() { _ = cli.Close() })
		st.Codes = pg.NewServiceCodeRepoCacheDecorator(st.Codes, cli, cfg.Redis.TTL, logger)
		st.Rates = pg.NewRateRepoCacheDecorator(st.Rates, cli, cfg.Redis.RateTTL, logger)
		logger.Info().Dur("ttl", cfg.Redis.TTL).Dur("rate_ttl", cfg.Redis.RateTTL).Msg("redis cache enabled")
	}
	return st, nil
}

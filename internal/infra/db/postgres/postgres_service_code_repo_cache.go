package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"provider-network-pricing/internal/domain/model"
	"provider-network-pricing/internal/domain/ports/repository"
	"provider-network-pricing/internal/infra/metrics"
	red "provider-network-pricing/internal/infra/redis"
)

var _ repository.ServiceCodeRepository = (*serviceCodeRepoCacheDecorator)(nil)

// serviceCodeRepoCacheDecorator caches positive code lookups. Codes are
// immutable once registered so entries never need invalidation; misses are
// not cached because the code may be registered later.
type serviceCodeRepoCacheDecorator struct {
	inner repository.ServiceCodeRepository
	cache red.RedisClient
	ttl   time.Duration
	log   *zerolog.Logger
}

func NewServiceCodeRepoCacheDecorator(inner repository.ServiceCodeRepository, cache red.RedisClient, ttl time.Duration, logger *zerolog.Logger) repository.ServiceCodeRepository {
	return &serviceCodeRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl, log: cacheLogger(logger)}
}

func serviceCodeKey(code string) string { return red.Key("service_code", code) }

func (d *serviceCodeRepoCacheDecorator) Create(ctx context.Context, tx repository.Tx, c *model.ServiceCode) error {
	return d.inner.Create(ctx, tx, c)
}

func (d *serviceCodeRepoCacheDecorator) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.ServiceCode, error) {
	key := serviceCodeKey(code)
	if val, err := d.cache.Get(ctx, key); err == nil {
		var c model.ServiceCode
		if json.Unmarshal([]byte(val), &c) == nil {
			metrics.IncCacheRequest("service_code", "hit")
			return &c, nil
		}
	} else if !red.IsMiss(err) {
		d.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}

	metrics.IncCacheRequest("service_code", "miss")
	c, err := d.inner.FindByCode(ctx, tx, code)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(c); err == nil {
		_ = d.cache.Set(ctx, key, b, d.ttl)
	}
	return c, nil
}

func (d *serviceCodeRepoCacheDecorator) ListAll(ctx context.Context, tx repository.Tx) ([]*model.ServiceCode, error) {
	return d.inner.ListAll(ctx, tx)
}

func cacheLogger(logger *zerolog.Logger) *zerolog.Logger {
	if logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	l := logger.With().Str("component", "RedisCache").Logger()
	return &l
}

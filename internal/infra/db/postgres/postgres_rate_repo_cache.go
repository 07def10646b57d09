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

var _ repository.RateRepository = (*rateRepoCacheDecorator)(nil)

// rateRepoCacheDecorator caches rate entries by key. Upserts delete the cached
// entry after the inner write succeeds and, inside a transaction, once more
// after commit so a reader refilling the old row in between is dropped.
type rateRepoCacheDecorator struct {
	inner repository.RateRepository
	cache red.RedisClient
	ttl   time.Duration
	log   *zerolog.Logger
}

func NewRateRepoCacheDecorator(inner repository.RateRepository, cache red.RedisClient, ttl time.Duration, logger *zerolog.Logger) repository.RateRepository {
	return &rateRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl, log: cacheLogger(logger)}
}

func defaultRateKey(k model.DefaultRateKey) string {
	return red.Key("rate:default", k.NetworkID, k.Code)
}

func providerRateKey(k model.ProviderRateKey) string {
	return red.Key("rate:provider", k.NetworkID, k.ProviderID, k.Code)
}

func (d *rateRepoCacheDecorator) UpsertDefault(ctx context.Context, tx repository.Tx, rec *model.DefaultNetworkRate) error {
	if err := d.inner.UpsertDefault(ctx, tx, rec); err != nil {
		return err
	}
	d.invalidate(ctx, defaultRateKey(rec.DefaultRateKey))
	return nil
}

func (d *rateRepoCacheDecorator) UpsertProvider(ctx context.Context, tx repository.Tx, rec *model.ProviderRate) error {
	if err := d.inner.UpsertProvider(ctx, tx, rec); err != nil {
		return err
	}
	d.invalidate(ctx, providerRateKey(rec.ProviderRateKey))
	return nil
}

func (d *rateRepoCacheDecorator) FindDefault(ctx context.Context, tx repository.Tx, key model.DefaultRateKey) (*model.DefaultNetworkRate, error) {
	ck := defaultRateKey(key)
	var cached model.DefaultNetworkRate
	if d.read(ctx, ck, "default_rate", &cached) {
		return &cached, nil
	}
	rec, err := d.inner.FindDefault(ctx, tx, key)
	if err != nil {
		return nil, err
	}
	d.write(ctx, ck, rec)
	return rec, nil
}

func (d *rateRepoCacheDecorator) FindProvider(ctx context.Context, tx repository.Tx, key model.ProviderRateKey) (*model.ProviderRate, error) {
	ck := providerRateKey(key)
	var cached model.ProviderRate
	if d.read(ctx, ck, "provider_rate", &cached) {
		return &cached, nil
	}
	rec, err := d.inner.FindProvider(ctx, tx, key)
	if err != nil {
		return nil, err
	}
	d.write(ctx, ck, rec)
	return rec, nil
}

func (d *rateRepoCacheDecorator) read(ctx context.Context, key, cacheName string, dst interface{}) bool {
	val, err := d.cache.Get(ctx, key)
	if err == nil && json.Unmarshal([]byte(val), dst) == nil {
		metrics.IncCacheRequest(cacheName, "hit")
		return true
	}
	if err != nil && !red.IsMiss(err) {
		d.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	metrics.IncCacheRequest(cacheName, "miss")
	return false
}

func (d *rateRepoCacheDecorator) write(ctx context.Context, key string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := d.cache.Set(ctx, key, b, d.ttl); err != nil {
		d.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (d *rateRepoCacheDecorator) invalidate(ctx context.Context, key string) {
	d.del(ctx, key)
	repository.AfterCommit(ctx, func() { d.del(context.WithoutCancel(ctx), key) })
}

func (d *rateRepoCacheDecorator) del(ctx context.Context, key string) {
	if err := d.cache.Del(ctx, key); err != nil {
		d.log.Warn().Err(err).Str("key", key).Msg("cache invalidation failed")
	}
}

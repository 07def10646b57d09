//go:build !integration

package postgres

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"provider-network-pricing/internal/domain/model"
	"provider-network-pricing/internal/domain/ports/repository"
	red "provider-network-pricing/internal/infra/redis"
)

// --- Mocks for Cache Decorator Tests ---

type mockInnerCodeRepo struct {
	CreateFunc     func(ctx context.Context, tx repository.Tx, c *model.ServiceCode) error
	FindByCodeFunc func(ctx context.Context, tx repository.Tx, code string) (*model.ServiceCode, error)
	ListAllFunc    func(ctx context.Context, tx repository.Tx) ([]*model.ServiceCode, error)
}

func (m *mockInnerCodeRepo) Create(ctx context.Context, tx repository.Tx, c *model.ServiceCode) error {
	return m.CreateFunc(ctx, tx, c)
}
func (m *mockInnerCodeRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.ServiceCode, error) {
	return m.FindByCodeFunc(ctx, tx, code)
}
func (m *mockInnerCodeRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.ServiceCode, error) {
	return m.ListAllFunc(ctx, tx)
}

type mockInnerRateRepo struct {
	UpsertDefaultFunc  func(ctx context.Context, tx repository.Tx, r *model.DefaultNetworkRate) error
	UpsertProviderFunc func(ctx context.Context, tx repository.Tx, r *model.ProviderRate) error
	FindDefaultFunc    func(ctx context.Context, tx repository.Tx, key model.DefaultRateKey) (*model.DefaultNetworkRate, error)
	FindProviderFunc   func(ctx context.Context, tx repository.Tx, key model.ProviderRateKey) (*model.ProviderRate, error)
}

func (m *mockInnerRateRepo) UpsertDefault(ctx context.Context, tx repository.Tx, r *model.DefaultNetworkRate) error {
	return m.UpsertDefaultFunc(ctx, tx, r)
}
func (m *mockInnerRateRepo) UpsertProvider(ctx context.Context, tx repository.Tx, r *model.ProviderRate) error {
	return m.UpsertProviderFunc(ctx, tx, r)
}
func (m *mockInnerRateRepo) FindDefault(ctx context.Context, tx repository.Tx, key model.DefaultRateKey) (*model.DefaultNetworkRate, error) {
	return m.FindDefaultFunc(ctx, tx, key)
}
func (m *mockInnerRateRepo) FindProvider(ctx context.Context, tx repository.Tx, key model.ProviderRateKey) (*model.ProviderRate, error) {
	return m.FindProviderFunc(ctx, tx, key)
}

// mapRedis is a map-backed RedisClient. Missing keys return redis.Nil like
// the real client.
type mapRedis struct {
	mu     sync.Mutex
	data   map[string]string
	ttls   map[string]time.Duration
	dels   []string
	getErr error
}

var _ red.RedisClient = (*mapRedis)(nil)

func newMapRedis() *mapRedis {
	return &mapRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mapRedis) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *mapRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttls[key] = expiration
	return nil
}

func (m *mapRedis) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
		m.dels = append(m.dels, k)
	}
	return nil
}

func (m *mapRedis) Ping(context.Context) error { return nil }
func (m *mapRedis) Close() error               { return nil }

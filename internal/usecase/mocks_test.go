//go:build !integration

// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v4"

	"provider-network-pricing/internal/domain"
	"provider-network-pricing/internal/domain/model"
	"provider-network-pricing/internal/domain/ports/repository"
)

// memCodeRepo is a small in-memory catalog used by unit tests.
type memCodeRepo struct {
	mu      sync.RWMutex
	store   map[string]model.ServiceCode
	findErr error // simulates backend failures on lookups
}

func newMemCodeRepo() *memCodeRepo {
	return &memCodeRepo{store: make(map[string]model.ServiceCode)}
}

func (m *memCodeRepo) Create(_ context.Context, _ repository.Tx, c *model.ServiceCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[c.Code]; ok {
		return domain.ErrCodeExists
	}
	m.store[c.Code] = *c
	return nil
}

func (m *memCodeRepo) FindByCode(_ context.Context, _ repository.Tx, code string) (*model.ServiceCode, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.store[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m *memCodeRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.ServiceCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.ServiceCode, 0, len(m.store))
	for _, c := range m.store {
		cp := c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

type memRateRepo struct {
	mu        sync.RWMutex
	defaults  map[model.DefaultRateKey]model.DefaultNetworkRate
	providers map[model.ProviderRateKey]model.ProviderRate
	findErr   error
	upserts   int
}

func newMemRateRepo() *memRateRepo {
	return &memRateRepo{
		defaults:  make(map[model.DefaultRateKey]model.DefaultNetworkRate),
		providers: make(map[model.ProviderRateKey]model.ProviderRate),
	}
}

func (m *memRateRepo) UpsertDefault(_ context.Context, _ repository.Tx, r *model.DefaultNetworkRate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	m.defaults[r.DefaultRateKey] = *r
	return nil
}

func (m *memRateRepo) UpsertProvider(_ context.Context, _ repository.Tx, r *model.ProviderRate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	m.providers[r.ProviderRateKey] = *r
	return nil
}

func (m *memRateRepo) FindDefault(_ context.Context, _ repository.Tx, key model.DefaultRateKey) (*model.DefaultNetworkRate, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.defaults[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (m *memRateRepo) FindProvider(_ context.Context, _ repository.Tx, key model.ProviderRateKey) (*model.ProviderRate, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.providers[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

type memberID struct{ network, provider string }

type memNetworkRepo struct {
	mu       sync.RWMutex
	networks map[string]model.Network
	members  map[memberID]model.NetworkProvider
}

func newMemNetworkRepo() *memNetworkRepo {
	return &memNetworkRepo{
		networks: make(map[string]model.Network),
		members:  make(map[memberID]model.NetworkProvider),
	}
}

func (m *memNetworkRepo) Create(_ context.Context, _ repository.Tx, n *model.Network) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.networks[n.ID]; ok {
		return domain.ErrNetworkExists
	}
	m.networks[n.ID] = *n
	return nil
}

func (m *memNetworkRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Network, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.networks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &n, nil
}

func (m *memNetworkRepo) AddMember(_ context.Context, _ repository.Tx, np *model.NetworkProvider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := memberID{np.NetworkID, np.ProviderID}
	if _, ok := m.members[k]; ok {
		return domain.ErrProviderExists
	}
	m.members[k] = *np
	return nil
}

func (m *memNetworkRepo) FindMember(_ context.Context, _ repository.Tx, networkID, providerID string) (*model.NetworkProvider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	np, ok := m.members[memberID{networkID, providerID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &np, nil
}

func (m *memNetworkRepo) UpdateMemberStatus(_ context.Context, _ repository.Tx, networkID, providerID string, status model.MembershipStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := memberID{networkID, providerID}
	np, ok := m.members[k]
	if !ok {
		return domain.ErrNotFound
	}
	np.Status = status
	m.members[k] = np
	return nil
}

type memProviderRepo struct {
	mu    sync.RWMutex
	store map[string]model.Provider
}

func newMemProviderRepo() *memProviderRepo {
	return &memProviderRepo{store: make(map[string]model.Provider)}
}

func (m *memProviderRepo) Create(_ context.Context, _ repository.Tx, p *model.Provider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[p.ID]; ok {
		return domain.ErrProviderExists
	}
	m.store[p.ID] = *p
	return nil
}

func (m *memProviderRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Provider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *memProviderRepo) SetVerified(_ context.Context, _ repository.Tx, id string, verified bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Verified = verified
	m.store[id] = p
	return nil
}

// countingTx runs fn inline and records how often it was used.
type countingTx struct {
	mu    sync.Mutex
	calls int
	opts  []pgx.TxOptions
}

func (c *countingTx) WithTx(ctx context.Context, opt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	c.mu.Lock()
	c.calls++
	c.opts = append(c.opts, opt)
	c.mu.Unlock()
	return fn(ctx, repository.NoTX)
}

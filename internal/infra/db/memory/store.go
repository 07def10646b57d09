// Package memory keeps every table in process memory. It backs the service
// when storage.driver is "memory" and doubles as a fake in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v4"

	"provider-network-pricing/internal/domain"
	"provider-network-pricing/internal/domain/model"
	"provider-network-pricing/internal/domain/ports/repository"
)

type memberKey struct {
	NetworkID  string
	ProviderID string
}

// Store owns one map per logical table. Keys are comparable structs so keys of
// different shapes can never collide.
type Store struct {
	mu sync.RWMutex
	// txMu serializes WithTx callbacks so read-then-write sequences are atomic
	// with respect to each other.
	txMu sync.Mutex

	codes         map[string]model.ServiceCode
	defaultRates  map[model.DefaultRateKey]model.DefaultNetworkRate
	providerRates map[model.ProviderRateKey]model.ProviderRate
	networks      map[string]model.Network
	members       map[memberKey]model.NetworkProvider
	providers     map[string]model.Provider
}

func NewStore() *Store {
	return &Store{
		codes:         make(map[string]model.ServiceCode),
		defaultRates:  make(map[model.DefaultRateKey]model.DefaultNetworkRate),
		providerRates: make(map[model.ProviderRateKey]model.ProviderRate),
		networks:      make(map[string]model.Network),
		members:       make(map[memberKey]model.NetworkProvider),
		providers:     make(map[string]model.Provider),
	}
}

func (s *Store) ServiceCodes() repository.ServiceCodeRepository { return &serviceCodeRepo{s: s} }
func (s *Store) Rates() repository.RateRepository               { return &rateRepo{s: s} }
func (s *Store) Networks() repository.NetworkRepository         { return &networkRepo{s: s} }
func (s *Store) Providers() repository.ProviderRepository       { return &providerRepo{s: s} }
func (s *Store) TxManager() repository.TransactionManager       { return &txManager{s: s} }

// ---- transactions ----

type txManager struct{ s *Store }

func (m *txManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	hctx, runHooks := repository.WithCommitHooks(ctx)
	if err := fn(hctx, repository.NoTX); err != nil {
		return err
	}
	runHooks()
	return nil
}

// ---- service codes ----

type serviceCodeRepo struct{ s *Store }

func (r *serviceCodeRepo) Create(_ context.Context, _ repository.Tx, c *model.ServiceCode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.codes[c.Code]; ok {
		return domain.ErrCodeExists
	}
	r.s.codes[c.Code] = *c
	return nil
}

func (r *serviceCodeRepo) FindByCode(_ context.Context, _ repository.Tx, code string) (*model.ServiceCode, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.codes[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *serviceCodeRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.ServiceCode, error) {
	r.s.mu.RLock()
	out := make([]*model.ServiceCode, 0, len(r.s.codes))
	for _, c := range r.s.codes {
		cp := c
		out = append(out, &cp)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// ---- rates ----

type rateRepo struct{ s *Store }

func (r *rateRepo) UpsertDefault(_ context.Context, _ repository.Tx, rec *model.DefaultNetworkRate) error {
	r.s.mu.Lock()
	r.s.defaultRates[rec.DefaultRateKey] = *rec
	r.s.mu.Unlock()
	return nil
}

func (r *rateRepo) UpsertProvider(_ context.Context, _ repository.Tx, rec *model.ProviderRate) error {
	r.s.mu.Lock()
	r.s.providerRates[rec.ProviderRateKey] = *rec
	r.s.mu.Unlock()
	return nil
}

func (r *rateRepo) FindDefault(_ context.Context, _ repository.Tx, key model.DefaultRateKey) (*model.DefaultNetworkRate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.defaultRates[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (r *rateRepo) FindProvider(_ context.Context, _ repository.Tx, key model.ProviderRateKey) (*model.ProviderRate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.providerRates[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// ---- networks ----

type networkRepo struct{ s *Store }

func (r *networkRepo) Create(_ context.Context, _ repository.Tx, n *model.Network) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.networks[n.ID]; ok {
		return domain.ErrNetworkExists
	}
	r.s.networks[n.ID] = *n
	return nil
}

func (r *networkRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Network, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.networks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &n, nil
}

func (r *networkRepo) AddMember(_ context.Context, _ repository.Tx, m *model.NetworkProvider) error {
	k := memberKey{NetworkID: m.NetworkID, ProviderID: m.ProviderID}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.members[k]; ok {
		return domain.ErrProviderExists
	}
	r.s.members[k] = *m
	return nil
}

func (r *networkRepo) FindMember(_ context.Context, _ repository.Tx, networkID, providerID string) (*model.NetworkProvider, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.members[memberKey{NetworkID: networkID, ProviderID: providerID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (r *networkRepo) UpdateMemberStatus(_ context.Context, _ repository.Tx, networkID, providerID string, status model.MembershipStatus) error {
	k := memberKey{NetworkID: networkID, ProviderID: providerID}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.members[k]
	if !ok {
		return domain.ErrNotFound
	}
	m.Status = status
	r.s.members[k] = m
	return nil
}

// ---- providers ----

type providerRepo struct{ s *Store }

func (r *providerRepo) Create(_ context.Context, _ repository.Tx, p *model.Provider) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.providers[p.ID]; ok {
		return domain.ErrProviderExists
	}
	r.s.providers[p.ID] = *p
	return nil
}

func (r *providerRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Provider, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.providers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *providerRepo) SetVerified(_ context.Context, _ repository.Tx, id string, verified bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.providers[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Verified = verified
	r.s.providers[id] = p
	return nil
}

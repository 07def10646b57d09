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

// NetworkUseCase manages networks and their provider memberships. Rate writes
// do not consult it.
type NetworkUseCase interface {
	CreateNetwork(ctx context.Context, id, name, description string) (*model.Network, error)
	GetNetwork(ctx context.Context, id string) (*model.Network, bool, error)

	// AddProvider records an active membership joined at now.
	// Returns domain.ErrNetworkNotFound or domain.ErrProviderExists.
	AddProvider(ctx context.Context, now model.LogicalTime, networkID, providerID, tier string) (*model.NetworkProvider, error)
	// UpdateProviderStatus returns domain.ErrProviderNotFound for non-members.
	UpdateProviderStatus(ctx context.Context, networkID, providerID string, status model.MembershipStatus) error
	GetProviderStatus(ctx context.Context, networkID, providerID string) (*model.NetworkProvider, bool, error)
	IsProviderActive(ctx context.Context, networkID, providerID string) (bool, error)
}

var _ NetworkUseCase = (*networkUC)(nil)

type networkUC struct {
	networks repository.NetworkRepository
	tx       repository.TransactionManager
	log      *zerolog.Logger
}

func NewNetworkUseCase(networks repository.NetworkRepository, tx repository.TransactionManager, logger *zerolog.Logger) NetworkUseCase {
	return &networkUC{networks: networks, tx: tx, log: componentLogger(logger, "NetworkUC")}
}

func (n *networkUC) CreateNetwork(ctx context.Context, id, name, description string) (*model.Network, error) {
	nw, err := model.NewNetwork(id, name, description)
	if err != nil {
		return nil, err
	}
	if err := n.networks.Create(ctx, repository.NoTX, nw); err != nil {
		n.log.Warn().Err(err).Str("network_id", nw.ID).Msg("create network rejected")
		return nil, err
	}
	n.log.Info().Str("network_id", nw.ID).Str("name", nw.Name).Msg("network created")
	return nw, nil
}

func (n *networkUC) GetNetwork(ctx context.Context, id string) (*model.Network, bool, error) {
	return found(n.networks.FindByID(ctx, repository.NoTX, strings.TrimSpace(id)))
}

func (n *networkUC) AddProvider(ctx context.Context, now model.LogicalTime, networkID, providerID, tier string) (*model.NetworkProvider, error) {
	m, err := model.NewNetworkProvider(networkID, providerID, tier, now)
	if err != nil {
		return nil, err
	}
	err = runTx(ctx, n.tx, func(ctx context.Context, tx repository.Tx) error {
		if _, err := n.networks.FindByID(ctx, tx, m.NetworkID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNetworkNotFound
			}
			return err
		}
		return n.networks.AddMember(ctx, tx, m)
	})
	if err != nil {
		n.log.Warn().Err(err).Str("network_id", m.NetworkID).Str("provider_id", m.ProviderID).Msg("add provider rejected")
		return nil, err
	}
	n.log.Info().Str("network_id", m.NetworkID).Str("provider_id", m.ProviderID).Str("tier", tier).Msg("provider joined network")
	return m, nil
}

func (n *networkUC) UpdateProviderStatus(ctx context.Context, networkID, providerID string, status model.MembershipStatus) error {
	if strings.TrimSpace(string(status)) == "" {
		return domain.ErrInvalidArgument
	}
	networkID, providerID = strings.TrimSpace(networkID), strings.TrimSpace(providerID)
	err := n.networks.UpdateMemberStatus(ctx, repository.NoTX, networkID, providerID, status)
	if errors.Is(err, domain.ErrNotFound) {
		err = domain.ErrProviderNotFound
	}
	if err != nil {
		return err
	}
	n.log.Info().Str("network_id", networkID).Str("provider_id", providerID).Str("status", string(status)).Msg("membership status updated")
	return nil
}

func (n *networkUC) GetProviderStatus(ctx context.Context, networkID, providerID string) (*model.NetworkProvider, bool, error) {
	return found(n.networks.FindMember(ctx, repository.NoTX, strings.TrimSpace(networkID), strings.TrimSpace(providerID)))
}

func (n *networkUC) IsProviderActive(ctx context.Context, networkID, providerID string) (bool, error) {
	m, _, err := n.GetProviderStatus(ctx, networkID, providerID)
	if err != nil {
		return false, err
	}
	return m.IsActive(), nil
}

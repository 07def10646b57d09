package repository

import (
	"context"

	"provider-network-pricing/internal/domain/model"
)

type NetworkRepository interface {
	// Create returns domain.ErrNetworkExists on duplicates.
	Create(ctx context.Context, tx Tx, n *model.Network) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Network, error)

	// AddMember returns domain.ErrProviderExists if the provider is already a member.
	AddMember(ctx context.Context, tx Tx, m *model.NetworkProvider) error
	FindMember(ctx context.Context, tx Tx, networkID, providerID string) (*model.NetworkProvider, error)
	// UpdateMemberStatus returns domain.ErrNotFound when there is no membership.
	UpdateMemberStatus(ctx context.Context, tx Tx, networkID, providerID string, status model.MembershipStatus) error
}

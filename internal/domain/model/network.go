package model

import (
	"strings"

	"provider-network-pricing/internal/domain"
)

// Network is a named collection of credentialed providers sharing default pricing.
type Network struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// NewNetwork builds an active network.
func NewNetwork(id, name, description string) (*Network, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Network{ID: id, Name: name, Description: description, Active: true}, nil
}

type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "active"
	MembershipSuspended MembershipStatus = "suspended"
)

// NetworkProvider is a provider's membership record inside a network.
type NetworkProvider struct {
	NetworkID  string           `json:"network_id"`
	ProviderID string           `json:"provider_id"`
	JoinDate   LogicalTime      `json:"join_date"`
	Status     MembershipStatus `json:"status"`
	Tier       string           `json:"tier"`
}

// IsActive is true only for the "active" status.
func (m *NetworkProvider) IsActive() bool {
	return m != nil && m.Status == MembershipActive
}

// NewNetworkProvider builds an active membership joined at now.
func NewNetworkProvider(networkID, providerID, tier string, now LogicalTime) (*NetworkProvider, error) {
	networkID, providerID = strings.TrimSpace(networkID), strings.TrimSpace(providerID)
	if networkID == "" || providerID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &NetworkProvider{
		NetworkID:  networkID,
		ProviderID: providerID,
		JoinDate:   now,
		Status:     MembershipActive,
		Tier:       tier,
	}, nil
}

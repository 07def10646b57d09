package model

import (
	"strings"

	"provider-network-pricing/internal/domain"
)

// Provider is a registered healthcare provider. Principal is the identity of
// the caller that registered it and is carried through unchanged.
type Provider struct {
	ID            string `json:"id"`
	Principal     string `json:"principal"`
	Name          string `json:"name"`
	Specialty     string `json:"specialty"`
	LicenseNumber string `json:"license_number"`
	LicenseExpiry int64  `json:"license_expiry"`
	Verified      bool   `json:"is_verified"`
}

// NewProvider builds an unverified provider.
func NewProvider(id, principal, name, specialty, licenseNumber string, licenseExpiry int64) (*Provider, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Provider{
		ID:            id,
		Principal:     principal,
		Name:          name,
		Specialty:     specialty,
		LicenseNumber: licenseNumber,
		LicenseExpiry: licenseExpiry,
	}, nil
}

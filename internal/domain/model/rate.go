package model

// RateEntry is a negotiated price in currency minor units with its validity window.
type RateEntry struct {
	Rate uint64 `json:"rate"`
	Window
}

// LiveAt reports whether the entry applies at now.
func (e RateEntry) LiveAt(now LogicalTime) bool { return e.Window.Contains(now) }

// DefaultRateKey identifies a network-wide default rate.
type DefaultRateKey struct {
	NetworkID string `json:"network_id"`
	Code      string `json:"code"`
}

// ProviderRateKey identifies a provider-specific rate inside a network.
type ProviderRateKey struct {
	NetworkID  string `json:"network_id"`
	ProviderID string `json:"provider_id"`
	Code       string `json:"code"`
}

// Default returns the network-level key sharing this key's network and code.
func (k ProviderRateKey) Default() DefaultRateKey {
	return DefaultRateKey{NetworkID: k.NetworkID, Code: k.Code}
}

// DefaultNetworkRate is the network fallback price for a service code.
type DefaultNetworkRate struct {
	DefaultRateKey
	RateEntry
}

// ProviderRate is a provider-specific price. NegotiatedDate is stamped with the
// logical time of the write, never supplied by the caller.
type ProviderRate struct {
	ProviderRateKey
	RateEntry
	NegotiatedDate LogicalTime `json:"negotiated_date"`
}

// RateSource names which table an effective rate came from.
type RateSource string

const (
	RateSourceProvider RateSource = "provider"
	RateSourceNetwork  RateSource = "network"
)

// EffectiveRate is the outcome of a successful resolution.
type EffectiveRate struct {
	Rate   uint64     `json:"rate"`
	Source RateSource `json:"source"`
	Window Window     `json:"window"`
}

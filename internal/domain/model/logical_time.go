package model

// LogicalTime is an externally supplied, monotonically non-decreasing counter
// (a ledger height). The core never advances it on its own.
type LogicalTime uint64

// Window is the half-open validity range [Effective, Expiry).
type Window struct {
	Effective LogicalTime `json:"effective_date"`
	Expiry    LogicalTime `json:"expiry_date"`
}

// Contains reports whether now falls inside the window. The lower bound is
// inclusive and the upper bound exclusive.
func (w Window) Contains(now LogicalTime) bool {
	return now >= w.Effective && now < w.Expiry
}

// Valid reports whether Effective < Expiry. Rate writes do not enforce it.
func (w Window) Valid() bool { return w.Effective < w.Expiry }

package domain

import "errors"

var (
	// Catalog
	ErrCodeExists   = errors.New("service code already exists")
	ErrCodeNotFound = errors.New("service code not found")

	// Network directory and provider registry
	ErrNetworkExists    = errors.New("network already exists")
	ErrNetworkNotFound  = errors.New("network not found")
	ErrProviderExists   = errors.New("provider already exists")
	ErrProviderNotFound = errors.New("provider not found")

	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")

	// Storage
	ErrOperationFailed    = errors.New("storage operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid execution context")
)

package model

import (
	"strings"

	"provider-network-pricing/internal/domain"
)

// ServiceCode is a billable clinical service (for example a CPT procedure code).
// Codes are registered once and never change afterwards.
type ServiceCode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// NewServiceCode trims and validates the identifier. Description and category
// are inert metadata and may be empty.
func NewServiceCode(code, description, category string) (*ServiceCode, error) {
	c := NormalizeCode(code)
	if c == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &ServiceCode{
		Code:        c,
		Description: description,
		Category:    category,
	}, nil
}

// NormalizeCode strips surrounding whitespace. Codes are otherwise opaque.
func NormalizeCode(code string) string {
	return strings.TrimSpace(code)
}

//go:build !integration

package usecase

import (
	"context"
	"errors"
	"testing"

	"provider-network-pricing/internal/domain"
)

func TestProviderUseCase_RegisterAndVerify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc := NewProviderUseCase(newMemProviderRepo(), nil)

	in := RegisterProviderInput{ID: "prov-1", Name: "Dr. A", Specialty: "cardiology", LicenseNumber: "LIC-1", LicenseExpiry: 1900000000}
	p, err := uc.Register(ctx, "principal-a", in)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if p.Principal != "principal-a" || p.Verified {
		t.Fatalf("unexpected provider %+v", p)
	}
	if _, err := uc.Register(ctx, "principal-b", in); !errors.Is(err, domain.ErrProviderExists) {
		t.Fatalf("expected ErrProviderExists, got %v", err)
	}

	if ok, _ := uc.IsVerified(ctx, "prov-1"); ok {
		t.Fatal("not verified yet")
	}
	if err := uc.Verify(ctx, "prov-1"); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok, err := uc.IsVerified(ctx, "prov-1"); !ok || err != nil {
		t.Fatalf("expected verified, got %v err=%v", ok, err)
	}
}

func TestProviderUseCase_Unknown(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc := NewProviderUseCase(newMemProviderRepo(), nil)

	if err := uc.Verify(ctx, "ghost"); !errors.Is(err, domain.ErrProviderNotFound) {
		t.Fatalf("expected ErrProviderNotFound, got %v", err)
	}
	if _, ok, err := uc.Get(ctx, "ghost"); ok || err != nil {
		t.Fatalf("expected absence, got ok=%v err=%v", ok, err)
	}
	if ok, err := uc.IsVerified(ctx, "ghost"); ok || err != nil {
		t.Fatalf("unknown providers are unverified, got %v err=%v", ok, err)
	}
	if _, err := uc.Register(ctx, "", RegisterProviderInput{}); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

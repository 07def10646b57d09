//go:build !integration

package usecase

import (
	"context"
	"errors"
	"testing"

	"provider-network-pricing/internal/domain"
	"provider-network-pricing/internal/domain/model"
)

func TestNetworkUseCase_CreateAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc := NewNetworkUseCase(newMemNetworkRepo(), &countingTx{}, nil)

	n, err := uc.CreateNetwork(ctx, "net-ppo", "Regional PPO", "")
	if err != nil {
		t.Fatalf("CreateNetwork: %v", err)
	}
	if !n.Active {
		t.Fatal("new networks are active")
	}
	if _, err := uc.CreateNetwork(ctx, "net-ppo", "again", ""); !errors.Is(err, domain.ErrNetworkExists) {
		t.Fatalf("expected ErrNetworkExists, got %v", err)
	}
	if _, ok, err := uc.GetNetwork(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected absence, got ok=%v err=%v", ok, err)
	}
}

func TestNetworkUseCase_Membership(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tm := &countingTx{}
	uc := NewNetworkUseCase(newMemNetworkRepo(), tm, nil)

	if _, err := uc.AddProvider(ctx, 5, "net-ppo", "prov-1", "gold"); !errors.Is(err, domain.ErrNetworkNotFound) {
		t.Fatalf("expected ErrNetworkNotFound, got %v", err)
	}
	_, _ = uc.CreateNetwork(ctx, "net-ppo", "Regional PPO", "")

	m, err := uc.AddProvider(ctx, 5, "net-ppo", "prov-1", "gold")
	if err != nil {
		t.Fatalf("AddProvider: %v", err)
	}
	if m.JoinDate != 5 || m.Status != model.MembershipActive {
		t.Fatalf("unexpected membership %+v", m)
	}
	if _, err := uc.AddProvider(ctx, 6, "net-ppo", "prov-1", "gold"); !errors.Is(err, domain.ErrProviderExists) {
		t.Fatalf("expected ErrProviderExists, got %v", err)
	}
	if tm.calls != 3 {
		t.Fatalf("AddProvider runs in a tx, got %d calls", tm.calls)
	}

	active, err := uc.IsProviderActive(ctx, "net-ppo", "prov-1")
	if err != nil || !active {
		t.Fatalf("expected active, got %v err=%v", active, err)
	}
	if err := uc.UpdateProviderStatus(ctx, "net-ppo", "prov-1", model.MembershipSuspended); err != nil {
		t.Fatalf("UpdateProviderStatus: %v", err)
	}
	if active, _ := uc.IsProviderActive(ctx, "net-ppo", "prov-1"); active {
		t.Fatal("suspended provider reported active")
	}
	got, ok, _ := uc.GetProviderStatus(ctx, " net-ppo ", "prov-1")
	if !ok || got.Status != model.MembershipSuspended {
		t.Fatalf("unexpected status %+v", got)
	}
}

func TestNetworkUseCase_StatusEdgeCases(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc := NewNetworkUseCase(newMemNetworkRepo(), nil, nil)

	if err := uc.UpdateProviderStatus(ctx, "net", "prov", model.MembershipActive); !errors.Is(err, domain.ErrProviderNotFound) {
		t.Fatalf("expected ErrProviderNotFound, got %v", err)
	}
	if err := uc.UpdateProviderStatus(ctx, "net", "prov", ""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	active, err := uc.IsProviderActive(ctx, "net", "stranger")
	if err != nil || active {
		t.Fatalf("non-members are inactive, got %v err=%v", active, err)
	}
}

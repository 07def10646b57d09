package usecase

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"provider-network-pricing/internal/domain"
	"provider-network-pricing/internal/domain/ports/repository"
)

// runTx executes fn inside tm, or directly with NoTX when no manager is wired.
func runTx(ctx context.Context, tm repository.TransactionManager, fn func(ctx context.Context, tx repository.Tx) error) error {
	if tm == nil {
		return fn(ctx, repository.NoTX)
	}
	return tm.WithTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// found turns a repository lookup into (value, present, err), treating
// domain.ErrNotFound as a plain absence.
func found[T any](v *T, err error) (*T, bool, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, v != nil, nil
}

func componentLogger(logger *zerolog.Logger, name string) *zerolog.Logger {
	if logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	l := logger.With().Str("component", name).Logger()
	return &l
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"provider-network-pricing/internal/infra/metrics"
)

// NewPgxPool parses dsn, applies maxConns when positive and verifies the
// connection with a ping.
func NewPgxPool(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.ConnectConfig(cctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(cctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// PoolStats adapts pgxpool counters for the metrics package.
func PoolStats(pool *pgxpool.Pool) metrics.PoolStats {
	st := pool.Stat()
	return metrics.PoolStats{
		Total:    st.TotalConns(),
		Idle:     st.IdleConns(),
		InUse:    st.AcquiredConns(),
		Max:      st.MaxConns(),
		Acquires: st.AcquireCount(),
	}
}

package sched

import (
	"context"
	"time"

	"provider-network-pricing/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// PoolStatsWorker periodically publishes connection pool counters.
type PoolStatsWorker struct {
	interval time.Duration
	stats    func() metrics.PoolStats
	publish  func(metrics.PoolStats)
	log      *zerolog.Logger
}

func NewPoolStatsWorker(interval time.Duration, stats func() metrics.PoolStats, logger *zerolog.Logger) *PoolStatsWorker {
	l := logger.With().Str("component", "PoolStatsWorker").Logger()
	return &PoolStatsWorker{
		interval: interval,
		stats:    stats,
		publish:  metrics.SetDBPoolStats,
		log:      &l,
	}
}

func (w *PoolStatsWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("Starting pool stats worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.publish(w.stats())
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping pool stats worker")
			return ctx.Err()
		case <-ticker.C:
			s := w.stats()
			w.publish(s)
			w.log.Trace().Int32("total", s.Total).Int32("in_use", s.InUse).Msg("pool stats published")
		}
	}
}

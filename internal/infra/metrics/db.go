package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(dbPoolConns, dbPoolAcquireTotal) }

var (
	dbPoolConns = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "db_pool_conns",
			Help: "Current state of the database connection pool.",
		},
		[]string{"state"}, // total, idle, in_use, max
	)

	dbPoolAcquireTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_pool_acquire_count",
			Help: "Cumulative successful connection acquires reported by the pool.",
		},
	)
)

// PoolStats is a backend-neutral snapshot of connection pool counters.
type PoolStats struct {
	Total, Idle, InUse, Max int32
	Acquires                int64
}

func SetDBPoolStats(s PoolStats) {
	dbPoolConns.WithLabelValues("total").Set(float64(s.Total))
	dbPoolConns.WithLabelValues("idle").Set(float64(s.Idle))
	dbPoolConns.WithLabelValues("in_use").Set(float64(s.InUse))
	dbPoolConns.WithLabelValues("max").Set(float64(s.Max))
	dbPoolAcquireTotal.Set(float64(s.Acquires))
}

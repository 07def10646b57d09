package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		rateResolutionsTotal,
		rateWritesTotal,
	)
}

var (
	rateResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_resolutions_total",
			Help: "Effective rate lookups by winning source (provider/network/none).",
		},
		[]string{"source"},
	)

	rateWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_writes_total",
			Help: "Accepted rate upserts by table (provider/network).",
		},
		[]string{"table"},
	)
)

func IncRateResolution(source string) {
	rateResolutionsTotal.WithLabelValues(norm(source)).Inc()
}

func IncRateWrite(table string) {
	rateWritesTotal.WithLabelValues(norm(table)).Inc()
}

package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(buildInfo) }

var buildInfo = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "pricing_build_info",
		Help: "Constant 1, labeled with the service version, storage driver and Go runtime.",
	},
	[]string{"version", "storage", "go_version"},
)

func SetBuildInfo(version, storage string) {
	buildInfo.WithLabelValues(version, norm(storage), runtime.Version()).Set(1)
}

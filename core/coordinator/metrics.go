package coordinator

import "github.com/prometheus/client_golang/prometheus"

var (
	storeReadLatency *prometheus.HistogramVec
	storeFailures    *prometheus.CounterVec
	candidatesFound  *prometheus.CounterVec
)

func newCollectors() (*prometheus.HistogramVec, *prometheus.CounterVec, *prometheus.CounterVec) {
	lat := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skylark_store_read_seconds",
			Help:    "Latency of data store table reads",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table"},
	)
	fail := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skylark_store_failures_total",
			Help: "Number of failed data store operations",
		},
		[]string{"op"},
	)
	cand := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skylark_candidates_matched_total",
			Help: "Number of pilots and drones matched to missions",
		},
		[]string{"kind"},
	)
	return lat, fail, cand
}

func init() {
	storeReadLatency, storeFailures, candidatesFound = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers coordinator metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(storeReadLatency, storeFailures, candidatesFound)
}

// ResetMetrics reinitializes the collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	storeReadLatency, storeFailures, candidatesFound = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}

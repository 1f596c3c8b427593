package ledger

import "github.com/prometheus/client_golang/prometheus"

var (
	finaliseDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "daap_ledger",
		Subsystem: "ledger",
		Name:      "finalise_duration_second",
		Help:      "The total latency of committing the dirty state of an operation",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(finaliseDuration)
}

package executor

import "github.com/prometheus/client_golang/prometheus"

var (
	operationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "daap_ledger",
			Subsystem: "executor",
			Name:      "operation_counter",
			Help:      "The number of settled operations",
		},
		[]string{"method", "status"},
	)

	executeOperationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "daap_ledger",
		Subsystem: "executor",
		Name:      "execute_operation_duration_second",
		Help:      "The total latency of operation execution",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 14),
	})

	emittedLogCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "daap_ledger",
		Subsystem: "executor",
		Name:      "emitted_log_counter",
		Help:      "The number of event logs of committed operations",
	})
)

func init() {
	prometheus.MustRegister(operationCounter)
	prometheus.MustRegister(executeOperationDuration)
	prometheus.MustRegister(emittedLogCounter)
}

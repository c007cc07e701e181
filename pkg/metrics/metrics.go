package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecordOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "entertext", Name: "record_operations_total", Help: "Record operations by name and result (ok, invalid, error)."},
		[]string{"op", "result"},
	)
	RecordOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "entertext", Name: "record_operation_duration_seconds", Help: "Latency of record operations including the store round trip.", Buckets: prometheus.DefBuckets},
		[]string{"op"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "entertext", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "entertext", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RecordOperations)
	reg.MustRegister(RecordOperationDuration)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}

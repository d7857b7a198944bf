package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"identity/pkg/utils"
)

var (
	IdentityOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_operations_total",
			Help: "Identity flows by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{IdentityOperations, HTTPRequestsTotal, HTTPRequestDuration} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveOperation counts one flow; failures are labelled with their error kind.
func ObserveOperation(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = utils.KindOf(err).String()
	}
	IdentityOperations.WithLabelValues(operation, outcome).Inc()
}

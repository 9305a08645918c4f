package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts business requests by product, method and status
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momo_requests_total",
			Help: "Total number of mobile-money API requests",
		},
		[]string{"product", "method", "status"},
	)

	// RequestDuration tracks request round-trip time per product
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "momo_request_duration_seconds",
			Help:    "Mobile-money API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"product"},
	)

	// TokenRefreshesTotal counts bearer token refreshes by product and outcome
	TokenRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momo_token_refreshes_total",
			Help: "Total number of bearer token refreshes",
		},
		[]string{"product", "outcome"},
	)

	// AuthRetriesTotal counts requests retried after an authentication rejection
	AuthRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momo_auth_retries_total",
			Help: "Total number of requests retried after an authentication rejection",
		},
		[]string{"product"},
	)
)

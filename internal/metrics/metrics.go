package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoanCalculations counts calculation requests by outcome
	LoanCalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_calculations_total",
			Help: "Loan calculation requests by loan type and status",
		},
		[]string{"loan_type", "status"},
	)

	// DroppedOffers counts upstream offers discarded for missing bank identity
	DroppedOffers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_offers_dropped_total",
			Help: "Raw bank offers dropped during adaptation",
		},
		[]string{"loan_type"},
	)

	// PricingRequests counts calls to the pricing API
	PricingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_requests_total",
			Help: "Calls to the external pricing API",
		},
		[]string{"status"},
	)

	// PricingLatency tracks pricing API round trips
	PricingLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pricing_request_duration_seconds",
			Help:    "Pricing API round-trip latency",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CacheLookups counts response cache hits and misses
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_cache_lookups_total",
			Help: "Pricing response cache lookups",
		},
		[]string{"result"},
	)
)

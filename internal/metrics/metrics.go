package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Calculations counts calculator runs by kind and outcome.
	Calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "akfinance_calculations_total",
			Help: "Total calculator runs",
		},
		[]string{"calculator", "status"},
	)

	// HTTPRequests counts handled HTTP requests.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "akfinance_http_requests_total",
			Help: "Total HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPDuration observes request latency per route.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "akfinance_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// LedgerFetches counts upstream transaction page fetches by outcome.
	LedgerFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "akfinance_ledger_fetches_total",
			Help: "Transaction page fetches from the upstream API",
		},
		[]string{"status"},
	)

	// CacheHits counts ledger cache lookups by result.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "akfinance_cache_lookups_total",
			Help: "Ledger cache lookups",
		},
		[]string{"result"},
	)
)

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts API requests by route pattern and status class.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledgerlite_http_requests_total",
		Help: "Total number of HTTP requests handled.",
	}, []string{"pattern", "status"})

	// HTTPRequestDuration observes request latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledgerlite_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"pattern"})

	// TransactionsWritten counts ledger writes by kind (manual, fixed_cost, auto_savings).
	TransactionsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledgerlite_transactions_written_total",
		Help: "Total number of transactions recorded in the ledger.",
	}, []string{"kind"})

	// ExportsTotal counts export worker outcomes by action and result.
	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledgerlite_exports_total",
		Help: "Total number of export attempts by action and outcome.",
	}, []string{"action", "outcome"})
)

// Handler returns the /metrics scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

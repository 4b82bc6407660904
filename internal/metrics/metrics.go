package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_latency_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	// Ledger operations
	LedgerOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Total committed ledger operations",
		},
		[]string{"type"}, // DEPOSIT|WITHDRAWAL|LOAN|LOAN_APPROVED|LOAN_PAID|TRANSFER
	)
	LedgerOperationsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_operations_failed_total",
			Help: "Total rejected ledger operations",
		},
		[]string{"type", "code"},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestLatency)
	prometheus.MustRegister(LedgerOperationsTotal)
	prometheus.MustRegister(LedgerOperationsFailed)
}

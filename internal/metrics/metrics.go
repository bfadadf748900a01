package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TransactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ledger_transactions_total", Help: "Ledger mutations by kind and outcome"},
		[]string{"kind", "outcome"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method, path pattern, and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(TransactionsTotal, HTTPDuration)
}

// RecordTransaction counts one attempted ledger mutation.
func RecordTransaction(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	TransactionsTotal.WithLabelValues(kind, outcome).Inc()
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, path string, status int, duration time.Duration) {
	HTTPDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Handler exposes the registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}

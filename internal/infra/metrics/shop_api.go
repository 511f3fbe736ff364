package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(shopAPIRequestsTotal, shopAPILatency)
}

var (
	shopAPIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_api_requests_total",
			Help: "Shop API calls by endpoint and outcome (ok/status/not_found/unexpected).",
		},
		[]string{"endpoint", "outcome"},
	)

	shopAPILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shop_api_request_duration_seconds",
			Help:    "Shop API call latency.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"endpoint"},
	)
)

func ObserveShopAPI(endpoint, outcome string, elapsed time.Duration) {
	shopAPIRequestsTotal.WithLabelValues(norm(endpoint), norm(outcome)).Inc()
	shopAPILatency.WithLabelValues(norm(endpoint)).Observe(elapsed.Seconds())
}

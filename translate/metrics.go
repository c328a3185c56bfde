package translate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusOK           = "ok"
	statusSoftFallback = "soft_fallback"
	statusError        = "error"
)

var (
	translationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "langbridge_translation_requests_total",
			Help: "Total number of translation provider requests",
		},
		[]string{"provider", "status"},
	)

	translationRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "langbridge_translation_request_duration_seconds",
			Help:    "Duration of translation provider requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"provider"},
	)
)

func countRequest(provider, status string) {
	translationRequestsTotal.WithLabelValues(provider, status).Inc()
}

func observeRequest(provider string, d time.Duration) {
	translationRequestDuration.WithLabelValues(provider).Observe(d.Seconds())
}

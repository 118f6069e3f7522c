package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "storefront", Subsystem: "client", Name: "requests_total", Help: "Outbound API requests by method and status class."},
		[]string{"method", "status"},
	)
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "storefront", Subsystem: "client", Name: "request_duration_seconds", Help: "Outbound API request latency.", Buckets: prometheus.DefBuckets},
		[]string{"method"},
	)
	SessionTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "storefront", Subsystem: "session", Name: "transitions_total", Help: "Session sign in and sign out outcomes."},
		[]string{"operation", "outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(APIRequests)
	reg.MustRegister(APIRequestDuration)
	reg.MustRegister(SessionTransitions)
}

// StatusClass buckets an HTTP status code as "2xx", "4xx" and so on. Zero means no response.
func StatusClass(code int) string {
	switch {
	case code <= 0:
		return "error"
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyline_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skyline_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	bookingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skyline_bookings_total",
			Help: "Total number of successful apartment bookings",
		},
	)

	bookingConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skyline_booking_conflicts_total",
			Help: "Total number of booking attempts rejected with a conflict",
		},
	)

	paymentIntentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skyline_payment_intents_total",
			Help: "Total number of payment intents created",
		},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyline_errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"},
	)
)

// Metrics returns a middleware that records Prometheus metrics.
func Metrics() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.status)
			path := normalizePath(r)

			httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)

			if wrapped.status >= 400 {
				errorType := "client_error"
				if wrapped.status >= 500 {
					errorType = "server_error"
				}
				errorsTotal.WithLabelValues(errorType).Inc()
			}
		})
	}
}

// normalizePath uses the chi route pattern to prevent cardinality explosion.
func normalizePath(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx != nil && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return r.URL.Path
}

// IncrementBookings increments the successful bookings counter.
// Call this from the agreement handler for accurate tracking.
func IncrementBookings() {
	bookingsTotal.Inc()
}

// IncrementBookingConflicts increments the rejected bookings counter.
func IncrementBookingConflicts() {
	bookingConflictsTotal.Inc()
}

// IncrementPaymentIntents increments the payment intents counter.
func IncrementPaymentIntents() {
	paymentIntentsTotal.Inc()
}

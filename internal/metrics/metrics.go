package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interviewsim",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "path", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "interviewsim",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	// ActiveInterviews tracks currently open interview channels.
	ActiveInterviews = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "interviewsim",
		Name:      "active_interviews",
		Help:      "Number of interview channels currently open",
	})

	// GenerationFailures counts generation errors by provider error code.
	GenerationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interviewsim",
		Name:      "generation_failures_total",
		Help:      "Total number of failed text generation requests",
	}, []string{"code"})

	// InterviewsConcluded counts interviews that reached feedback delivery.
	InterviewsConcluded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "interviewsim",
		Name:      "interviews_concluded_total",
		Help:      "Total number of interviews that delivered closing feedback",
	})
)

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and latency per route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		status := strconv.Itoa(ww.Status())
		httpRequests.WithLabelValues(r.Method, path, status).Inc()
		httpLatency.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}

package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aussiebroadwan/miniblog/pkg/httpx"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "miniblog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "pattern", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "miniblog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "pattern"},
	)

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "miniblog_logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	postsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "miniblog_posts_created_total",
			Help: "Total posts created",
		},
	)

	commentsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "miniblog_comments_created_total",
			Help: "Total comments created",
		},
	)
)

// MetricsMiddleware records request counts and latency. The matched mux
// pattern is the label, not the raw path, so ids don't explode the
// cardinality.
func MetricsMiddleware(mux *http.ServeMux) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &metricsRecorder{ResponseWriter: w, status: http.StatusOK}

			_, pattern := mux.Handler(r)
			if pattern == "" {
				pattern = "unmatched"
			}

			next.ServeHTTP(rec, r)

			httpRequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
		})
	}
}

type metricsRecorder struct {
	http.ResponseWriter

	status int
}

func (rw *metricsRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cropd",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cropd",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cropd",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "In-flight HTTP requests",
		},
	)

	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cropd",
			Name:      "predictions_total",
			Help:      "Successful predictions by top label",
		},
		[]string{"label"},
	)

	predictionErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cropd",
			Name:      "prediction_errors_total",
			Help:      "Failed predictions by reason",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, httpInflight, predictionsTotal, predictionErrorsTotal)
}

// statusClientClosed is recorded for predictions abandoned by the client or
// by shutdown, following the nginx convention.
const statusClientClosed = 499

// Prediction error reasons.
const (
	reasonNotLoaded    = "not_loaded"
	reasonBadRequest   = "bad_request"
	reasonTooLarge     = "too_large"
	reasonInvalidImage = "invalid_image"
	reasonInference    = "inference"
	reasonTimeout      = "timeout"
	reasonCanceled     = "canceled"
	reasonOther        = "other"
)

// statusRecorder wraps http.ResponseWriter to capture status code
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware instruments requests for Prometheus. The path label is
// read after the handler ran, when chi has resolved the route pattern.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInflight.Inc()
		defer httpInflight.Dec()

		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sr, r)
		path := routePatternOrPath(r)
		statusLabel := strconv.Itoa(sr.status)
		dur := time.Since(start).Seconds()
		httpRequestsTotal.WithLabelValues(path, r.Method, statusLabel).Inc()
		httpRequestDuration.WithLabelValues(path, r.Method, statusLabel).Observe(dur)
	})
}

// routePatternOrPath returns the chi route pattern if available, otherwise
// falls back to URL path. This avoids high-cardinality label values.
func routePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// IncrementPredictionError counts a failed prediction.
func IncrementPredictionError(reason string) {
	if reason == "" {
		reason = reasonOther
	}
	predictionErrorsTotal.WithLabelValues(reason).Inc()
}

func incrementPrediction(label string) {
	predictionsTotal.WithLabelValues(label).Inc()
}

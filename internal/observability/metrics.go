package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics (mock API server)
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsActive  prometheus.Gauge

	// Test data generation metrics
	GenerationsTotal *prometheus.CounterVec
	FallbacksTotal   *prometheus.CounterVec

	// Model API metrics
	ModelRequestsTotal   *prometheus.CounterVec
	ModelRequestDuration *prometheus.HistogramVec
	ModelTokensUsed      *prometheus.CounterVec
}

// NewMetrics creates a metrics instance with all collectors registered
// on a dedicated registry, so repeated construction in tests is safe.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "qaforge"
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,

		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_active",
				Help:      "Number of active HTTP requests",
			},
		),

		// Test data generation metrics
		GenerationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "testdata_generations_total",
				Help:      "Total number of test data records generated",
			},
			[]string{"entity", "strategy"}, // strategy: model, synthetic
		),
		FallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "testdata_fallbacks_total",
				Help:      "Total number of model-to-synthetic fallbacks",
			},
			[]string{"reason"},
		),

		// Model API metrics
		ModelRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "model_requests_total",
				Help:      "Total number of model API requests",
			},
			[]string{"model", "purpose", "status"},
		),
		ModelRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "model_request_duration_seconds",
				Help:      "Model API request duration in seconds",
				Buckets:   []float64{.5, 1, 2, 5, 10, 20, 30, 60},
			},
			[]string{"model", "purpose"},
		),
		ModelTokensUsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "model_tokens_used_total",
				Help:      "Total number of tokens used",
			},
			[]string{"model", "type"}, // type: prompt, completion
		),
	}

	return m
}

// Handler returns the Prometheus HTTP handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordGeneration records one generated test data record
func (m *Metrics) RecordGeneration(entity, strategy string) {
	m.GenerationsTotal.WithLabelValues(entity, strategy).Inc()
}

// RecordFallback records a model-to-synthetic fallback
func (m *Metrics) RecordFallback(reason string) {
	m.FallbacksTotal.WithLabelValues(reason).Inc()
}

// RecordModelRequest records model API metrics
func (m *Metrics) RecordModelRequest(model, purpose, status string, duration time.Duration, promptTokens, completionTokens int) {
	m.ModelRequestsTotal.WithLabelValues(model, purpose, status).Inc()
	m.ModelRequestDuration.WithLabelValues(model, purpose).Observe(duration.Seconds())
	m.ModelTokensUsed.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	m.ModelTokensUsed.WithLabelValues(model, "completion").Add(float64(completionTokens))
}

// HTTPMiddleware returns middleware for recording HTTP metrics
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.HTTPRequestsActive.Inc()
		defer m.HTTPRequestsActive.Dec()

		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		m.RecordHTTPRequest(r.Method, r.URL.Path, rw.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

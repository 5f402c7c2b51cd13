package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Default naming for the global manager.
const (
	defaultNamespace = "habitat"
	defaultSubsystem = "evaluator"
)

// scoreBuckets cover the closed score range in steps of five points.
var scoreBuckets = prometheus.LinearBuckets(0, 5, 21) //nolint:gochecknoglobals // fixed bucket layout

// Manager owns every Prometheus collector for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Evaluation metrics
	evaluations       *prometheus.CounterVec
	penalties         *prometheus.CounterVec
	scores            prometheus.Histogram
	evaluationLatency prometheus.Histogram
	evaluationErrors  *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var (
	globalMu       sync.RWMutex               //nolint:gochecknoglobals // guards the singleton below
	globalManager  *Manager                   //nolint:gochecknoglobals // intentional global for singleton metrics manager
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // custom registry avoids default Go metrics
)

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
// It panics if a collector is already registered on the target registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// Configure replaces the global manager with one built from opts on a fresh
// registry, which is returned by GetRegistry afterwards. Call it once at
// startup, before serving requests.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	m := NewManager(append(opts, WithPrometheusRegistry(registry))...)

	globalMu.Lock()
	globalManager = m
	customRegistry = registry
	globalMu.Unlock()
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of collectors
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.evaluations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "evaluations_total",
		Help:        "Total number of habitability evaluations by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.penalties = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "penalties_total",
		Help:        "Total number of penalties applied by kind",
		ConstLabels: labels,
	}, []string{"kind"})

	m.scores = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "score",
		Help:        "Distribution of returned habitability scores",
		Buckets:     scoreBuckets,
		ConstLabels: labels,
	})

	m.evaluationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "evaluation_latency_milliseconds",
		Help:        "Histogram of evaluation latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.evaluationErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "evaluation_errors_total",
		Help:        "Total number of evaluations that did not produce a score",
		ConstLabels: labels,
	}, []string{"reason"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_type_total",
		Help:        "Total number of errors by type",
		ConstLabels: labels,
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Total number of errors by endpoint",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})
}

func current() *Manager {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalManager
}

// RecordEvaluation counts an evaluation by outcome and observes its score.
func RecordEvaluation(outcome string, score float64) {
	m := current()
	m.evaluations.WithLabelValues(outcome).Inc()
	m.scores.Observe(score)
}

// RecordPenalty increments the counter for a penalty kind.
func RecordPenalty(kind string) {
	current().penalties.WithLabelValues(kind).Inc()
}

// RecordEvaluationLatency records evaluation latency in milliseconds.
func RecordEvaluationLatency(latencyMs float64) {
	current().evaluationLatency.Observe(latencyMs)
}

// RecordEvaluationError counts an evaluation that failed before scoring.
func RecordEvaluationError(reason string) {
	current().evaluationErrors.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	current().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	current().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	current().errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	current().errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	current().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	current().systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	current().systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the Prometheus registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return customRegistry
}

// Gather collects the current metric families from the global registry.
func Gather() ([]*dto.MetricFamily, error) {
	mfs, err := GetRegistry().Gather()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGatherFailed, err)
	}
	return mfs, nil
}

// Package metrics provides Prometheus metrics for the pitchside evaluation service.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	constLabels    map[string]string
	registry       prometheus.Registerer

	// Engine
	evaluations       *prometheus.CounterVec
	evaluationLatency prometheus.Histogram
	tiers             *prometheus.CounterVec
	exclusions        *prometheus.CounterVec
	ageBandFallbacks  prometheus.Counter
	programWeeks      prometheus.Histogram
	overallScore      prometheus.Histogram

	// Benchmarks
	benchmarksSaved    *prometheus.CounterVec
	comparisonOutcomes *prometheus.CounterVec

	// Intake
	assessmentsAccepted  prometheus.Counter
	assessmentsDuplicate prometheus.Counter
	assessmentsRejected  *prometheus.CounterVec

	// Queue
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	queueEnqueued prometheus.Counter
	queueDequeued prometheus.Counter
	queueDropped  prometheus.Counter

	// Workers
	workerCount   prometheus.Gauge
	workerActive  prometheus.Gauge
	workerLatency prometheus.Histogram
	workerErrors  prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "pitchside",
		subsystem:      "engine",
		latencyBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// Use replaces the manager behind the package-level recorders.
func Use(m *Manager) error {
	if m == nil {
		return ErrNoManager
	}
	globalManager = m
	return nil
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: buckets,
	})
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.evaluations = m.counterVec("evaluations_total",
		"Assessments evaluated, by athlete age band", "age_band")
	m.evaluationLatency = m.histogram("evaluation_latency_milliseconds",
		"Time to build one evaluation report", m.latencyBuckets)
	m.tiers = m.counterVec("metric_tiers_total",
		"Performance tiers assigned, by metric and tier", "metric", "tier")
	m.exclusions = m.counterVec("metric_exclusions_total",
		"Metrics excluded from scoring, by reason", "metric", "reason")
	m.ageBandFallbacks = m.counter("age_band_fallbacks_total",
		"Ages outside every band that were evaluated against elite standards")
	m.programWeeks = m.histogram("program_weeks",
		"Length of generated training programs in weeks", []float64{8, 10, 12, 16})
	m.overallScore = m.histogram("overall_score",
		"Normalized overall scores (0-100)", prometheus.LinearBuckets(10, 10, 9))

	m.benchmarksSaved = m.counterVec("benchmarks_saved_total",
		"Benchmarks persisted, by baseline flag", "baseline")
	m.comparisonOutcomes = m.counterVec("comparison_outcomes_total",
		"Per-metric benchmark comparison outcomes", "outcome")

	m.assessmentsAccepted = m.counter("assessments_accepted_total",
		"Assessments accepted for asynchronous evaluation")
	m.assessmentsDuplicate = m.counter("assessments_duplicate_total",
		"Assessments dropped because their id was already seen")
	m.assessmentsRejected = m.counterVec("assessments_rejected_total",
		"Assessments rejected at intake, by reason", "reason")

	m.queueSize = m.gauge("queue_size", "Current number of queued assessments")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum number of queued assessments")
	m.queueEnqueued = m.counter("queue_enqueued_total", "Assessments enqueued")
	m.queueDequeued = m.counter("queue_dequeued_total", "Assessments dequeued")
	m.queueDropped = m.counter("queue_dropped_total", "Assessments refused because the queue was full or closed")

	m.workerCount = m.gauge("worker_count", "Configured number of workers")
	m.workerActive = m.gauge("worker_active", "Workers currently processing an assessment")
	m.workerLatency = m.histogram("worker_processing_latency_milliseconds",
		"Time for a worker to evaluate and persist one assessment", m.latencyBuckets)
	m.workerErrors = m.counter("worker_errors_total", "Assessments a worker failed to process")

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = m.counterVec("errors_total",
		"Errors by component and type", "component", "error_type")
}

// RecordEvaluation counts one evaluation and its latency.
func RecordEvaluation(ageBand string, latencyMs float64) {
	globalManager.evaluations.WithLabelValues(ageBand).Inc()
	globalManager.evaluationLatency.Observe(latencyMs)
}

// RecordTier counts a tier assigned to a metric.
func RecordTier(metric, tier string) {
	globalManager.tiers.WithLabelValues(metric, tier).Inc()
}

// RecordExclusion counts a metric left out of scoring.
func RecordExclusion(metric, reason string) {
	globalManager.exclusions.WithLabelValues(metric, reason).Inc()
}

// RecordAgeBandFallback counts an out-of-range age.
func RecordAgeBandFallback() {
	globalManager.ageBandFallbacks.Inc()
}

// RecordProgram observes a generated program length.
func RecordProgram(weeks int) {
	globalManager.programWeeks.Observe(float64(weeks))
}

// RecordOverallScore observes a normalized overall score.
func RecordOverallScore(score float64) {
	globalManager.overallScore.Observe(score)
}

// RecordBenchmarkSaved counts a persisted benchmark.
func RecordBenchmarkSaved(baseline bool) {
	label := "false"
	if baseline {
		label = "true"
	}
	globalManager.benchmarksSaved.WithLabelValues(label).Inc()
}

// RecordComparisonOutcome counts one per-metric comparison outcome.
func RecordComparisonOutcome(outcome string) {
	globalManager.comparisonOutcomes.WithLabelValues(outcome).Inc()
}

// RecordAssessmentAccepted counts an assessment accepted at intake.
func RecordAssessmentAccepted() {
	globalManager.assessmentsAccepted.Inc()
}

// RecordAssessmentDuplicate counts an assessment dropped as duplicate.
func RecordAssessmentDuplicate() {
	globalManager.assessmentsDuplicate.Inc()
}

// RecordAssessmentRejected counts an assessment rejected at intake.
func RecordAssessmentRejected(reason string) {
	globalManager.assessmentsRejected.WithLabelValues(reason).Inc()
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueDropped increments the dropped counter.
func RecordQueueDropped() {
	globalManager.queueDropped.Inc()
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// WorkerBusy marks a worker as processing.
func WorkerBusy() {
	globalManager.workerActive.Inc()
}

// WorkerIdle marks a worker as done processing.
func WorkerIdle() {
	globalManager.workerActive.Dec()
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RegisterRuntimeCollectors adds the Go runtime and process collectors to
// the custom registry. Registering twice is not an error.
func RegisterRuntimeCollectors() error {
	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: "pitchside"}),
	} {
		if err := customRegistry.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return fmt.Errorf("register runtime collector: %w", err)
			}
		}
	}
	return nil
}

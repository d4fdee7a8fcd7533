package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TriageMetrics holds the Prometheus metrics for the triage pipeline.
type TriageMetrics struct {
	RunsTotal            *prometheus.CounterVec
	ClassificationsTotal *prometheus.CounterVec
	RunSeconds           prometheus.Histogram

	LLMRequestsTotal  *prometheus.CounterVec
	LLMLatencySeconds *prometheus.HistogramVec

	ExtractionFailuresTotal prometheus.Counter
}

// Default creates metrics registered on the default registerer.
func Default() *TriageMetrics {
	return New(prometheus.DefaultRegisterer)
}

// New creates a new set of triage metrics.
func New(reg prometheus.Registerer) *TriageMetrics {
	factory := promauto.With(reg)

	return &TriageMetrics{
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "triage_runs_total",
				Help: "Pipeline runs by terminal outcome",
			},
			[]string{"outcome"},
		),
		ClassificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "triage_classifications_total",
				Help: "Completed classifications by category",
			},
			[]string{"category"},
		),
		RunSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "triage_run_duration_seconds",
				Help:    "End-to-end pipeline run duration",
				Buckets: prometheus.DefBuckets,
			},
		),
		LLMRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "triage_llm_requests_total",
				Help: "Inference service requests by operation and status",
			},
			[]string{"operation", "status"},
		),
		LLMLatencySeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "triage_llm_latency_seconds",
				Help:    "Inference service request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		ExtractionFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "triage_extraction_failures_total",
				Help: "Uploaded documents that failed text extraction",
			},
		),
	}
}

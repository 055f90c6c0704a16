// Package middleware provides cross-cutting concerns for the relevance
// engine: metrics collection for evaluations and provider calls.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nkatyal/resume-relevance/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It covers the two metric families the engine emits:
// evaluation outcomes and backing-service (LLM, embedding) calls.
type PrometheusMetrics struct {
	evaluationLatency *prometheus.HistogramVec
	evaluationsTotal  *prometheus.CounterVec
	finalScore        prometheus.Histogram
	llmLatency        *prometheus.HistogramVec
	llmRequests       *prometheus.CounterVec
	llmErrors         *prometheus.CounterVec
	llmTokens         *prometheus.CounterVec
	systemGauges      *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and
// registers all metrics in the global Prometheus registry. Create at
// most one per process.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		evaluationLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "evaluation_duration_seconds",
				Help:    "End-to-end time to score one candidate against one role.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		evaluationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evaluations_total",
				Help: "Total evaluations performed, labeled by verdict.",
			},
			[]string{"verdict"},
		),
		finalScore: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "evaluation_final_score",
				Help:    "Distribution of final relevance scores.",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
		),
		llmLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "llm_request_duration_seconds",
				Help:    "Latency of backing-service requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"model"},
		),
		llmRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_requests_total",
				Help: "Total successful backing-service requests.",
			},
			[]string{"model"},
		),
		llmErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_request_errors_total",
				Help: "Total failed backing-service requests.",
			},
			[]string{"model"},
		),
		llmTokens: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_tokens_total",
				Help: "Total tokens consumed across backing-service requests.",
			},
			[]string{"model"},
		),
		systemGauges: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "relevance_engine_state",
				Help: "Current engine state values.",
			},
			[]string{"metric"},
		),
	}
}

var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// RecordLatency records operation latency. Provider-call latencies
// carry a model label; engine operations do not.
func (pm *PrometheusMetrics) RecordLatency(
	operation string, duration time.Duration, labels map[string]string,
) {
	if model, ok := labels["model"]; ok {
		pm.llmLatency.WithLabelValues(model).Observe(duration.Seconds())
		return
	}
	pm.evaluationLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter increments the counter named by metric. Unknown metric
// names fold into the system gauge family rather than being dropped.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case "evaluations_total":
		pm.evaluationsTotal.WithLabelValues(labels["verdict"]).Add(value)
	case "evaluation_errors_total":
		pm.evaluationsTotal.WithLabelValues("error").Add(value)
	case "llm_requests_total":
		pm.llmRequests.WithLabelValues(labels["model"]).Add(value)
	case "llm_request_errors_total":
		pm.llmErrors.WithLabelValues(labels["model"]).Add(value)
	case "llm_tokens_total":
		pm.llmTokens.WithLabelValues(labels["model"]).Add(value)
	default:
		pm.systemGauges.WithLabelValues(metric).Add(value)
	}
}

// RecordGauge sets the gauge named by metric.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	pm.systemGauges.WithLabelValues(metric).Set(value)
}

// RecordHistogram records a sample in the histogram named by metric.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case "evaluation_final_score":
		pm.finalScore.Observe(value)
	default:
		pm.systemGauges.WithLabelValues(metric).Set(value)
	}
}

package llm

import (
	"context"
	"time"

	"github.com/nkatyal/resume-relevance/internal/ports"
)

// metricsLLM records request latency, token consumption, and failure
// counts for every provider call.
type metricsLLM struct {
	next      CoreLLM
	collector ports.MetricsCollector
}

// MetricsMiddleware creates middleware that reports provider call
// metrics through the given collector.
func MetricsMiddleware(collector ports.MetricsCollector) Middleware {
	return func(next CoreLLM) CoreLLM {
		return &metricsLLM{next: next, collector: collector}
	}
}

func (m *metricsLLM) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	start := time.Now()
	response, tokensIn, tokensOut, err := m.next.DoRequest(ctx, prompt, opts)

	labels := map[string]string{"model": m.next.GetModel()}
	m.collector.RecordLatency("llm_request", time.Since(start), labels)

	if err != nil {
		m.collector.RecordCounter("llm_request_errors_total", 1, labels)
		return response, tokensIn, tokensOut, err
	}

	m.collector.RecordCounter("llm_requests_total", 1, labels)
	m.collector.RecordCounter("llm_tokens_total", float64(tokensIn+tokensOut), labels)
	return response, tokensIn, tokensOut, nil
}

func (m *metricsLLM) GetModel() string  { return m.next.GetModel() }
func (m *metricsLLM) SetModel(s string) { m.next.SetModel(s) }

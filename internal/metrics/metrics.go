// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics exposes Prometheus instrumentation for the digest pipeline
// and the /metrics handler that serves it.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultOK          = "ok"
	ResultError       = "error"
	ResultDegraded    = "degraded"
	ResultPlaceholder = "placeholder"
)

// Metrics holds the pipeline collectors. Each instance owns its own registry
// so tests and multiple servers in one process do not collide.
type Metrics struct {
	registry *prometheus.Registry

	PapersFetched prometheus.Counter
	Summaries     *prometheus.CounterVec
	ChatRequests  *prometheus.CounterVec
	LLMDuration   *prometheus.HistogramVec
}

// New registers the pipeline collectors plus the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		PapersFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "paper_digest_papers_fetched_total",
			Help: "Papers returned by the listing source after the recency filter",
		}),
		Summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paper_digest_summaries_total",
			Help: "Summaries generated, by result",
		}, []string{"result"}),
		ChatRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paper_digest_chat_requests_total",
			Help: "Chat questions handled, by result",
		}, []string{"result"}),
		LLMDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "paper_digest_llm_duration_seconds",
			Help:    "Language model call latency",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"op"}),
	}
	reg.MustRegister(
		m.PapersFetched, m.Summaries, m.ChatRequests, m.LLMDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveLLM records the duration of one model call for op.
func (m *Metrics) ObserveLLM(op string, started time.Time) {
	m.LLMDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Package metrics 收集 workflow 結果的 Prometheus 指標
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry
	results  *prometheus.CounterVec
}

// New 建立獨立的 registry，避免與全域 DefaultRegisterer 互相干擾
func New() *Metrics {
	registry := prometheus.NewRegistry()
	results := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "poker_log",
			Name:      "workflow_results_total",
			Help:      "Workflow results partitioned by operation and result code.",
		},
		[]string{"operation", "code"},
	)
	registry.MustRegister(
		results,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Metrics{registry: registry, results: results}
}

// Observe 記錄一次 workflow 結果；m 為 nil 時不做事
func (m *Metrics) Observe(operation, code string) {
	if m == nil {
		return
	}
	m.results.WithLabelValues(operation, code).Inc()
}

// Handler 回傳 /metrics 使用的 http.Handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry 供測試讀取指標
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the server's collectors around a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AIFallbacks     *prometheus.CounterVec
	TrashPurged     prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "neofin",
			Name:      "http_requests_total",
			Help:      "HTTP requests by operation and status code.",
		}, []string{"operation", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "neofin",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		AIFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "neofin",
			Name:      "ai_fallbacks_total",
			Help:      "AI gateway calls answered with a fallback payload.",
		}, []string{"call", "reason"}),
		TrashPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neofin",
			Name:      "trash_purged_total",
			Help:      "Trashed transactions removed by the retention policy.",
		}),
	}

	m.registry.MustRegister(
		m.Requests,
		m.RequestDuration,
		m.AIFallbacks,
		m.TrashPurged,
		prometheus.NewGoCollector(),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// HumaMiddleware records request count and latency per operation.
func (m *Metrics) HumaMiddleware(ctx huma.Context, next func(huma.Context)) {
	operation := "unknown"
	if op := ctx.Operation(); op != nil && op.OperationID != "" {
		operation = op.OperationID
	}

	start := time.Now()
	next(ctx)

	m.RequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	m.Requests.WithLabelValues(operation, strconv.Itoa(ctx.Status())).Inc()
}

// AIFallback counts a degraded AI answer. Safe on a nil receiver so the
// gateway can run without metrics in tests and CLI commands.
func (m *Metrics) AIFallback(call, reason string) {
	if m == nil {
		return
	}
	m.AIFallbacks.WithLabelValues(call, reason).Inc()
}

func (m *Metrics) Purged(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.TrashPurged.Add(float64(n))
}

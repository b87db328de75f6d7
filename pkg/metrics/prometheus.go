// Package metrics provides Prometheus metrics for the vGUPPI evaluator.
package metrics

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"vguppi/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "vguppi"

var defaultBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Manager owns the service's collectors.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registerer       prometheus.Registerer
	gatherer         prometheus.Gatherer

	evaluations      *prometheus.CounterVec
	nonFiniteResults *prometheus.CounterVec

	heatmapSweeps    *prometheus.CounterVec
	heatmapCells     prometheus.Counter
	heatmapNonFinite prometheus.Counter
	heatmapDuration  prometheus.Histogram

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		histogramBuckets: defaultBuckets,
		registerer:       prometheus.DefaultRegisterer,
		gatherer:         prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(m)
	}

	f := promauto.With(m.registerer)

	m.evaluations = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "evaluations_total",
		Help:      "Scalar formula evaluations by source.",
	}, []string{"source"})
	m.nonFiniteResults = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "nonfinite_results_total",
		Help:      "Scalar evaluations with at least one non-finite index, by metric.",
	}, []string{"metric"})

	m.heatmapSweeps = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "heatmap",
		Name:      "sweeps_total",
		Help:      "Completed heatmap sweeps by metric.",
	}, []string{"metric"})
	m.heatmapCells = f.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "heatmap",
		Name:      "cells_total",
		Help:      "Grid cells evaluated.",
	})
	m.heatmapNonFinite = f.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "heatmap",
		Name:      "nonfinite_cells_total",
		Help:      "Grid cells holding NaN or Inf.",
	})
	m.heatmapDuration = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "heatmap",
		Name:      "duration_seconds",
		Help:      "Wall time of one sweep.",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	m.httpRequestDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   m.histogramBuckets,
	}, []string{"method", "route"})

	return m
}

// ObserveHeatmap implements heatmap.Observer.
func (m *Manager) ObserveHeatmap(metric model.Metric, cells, nonFinite int, elapsed time.Duration) {
	m.heatmapSweeps.WithLabelValues(string(metric)).Inc()
	m.heatmapCells.Add(float64(cells))
	m.heatmapNonFinite.Add(float64(nonFinite))
	m.heatmapDuration.Observe(elapsed.Seconds())
}

// ObserveEvaluation counts one scalar evaluation and any non-finite indices in it.
func (m *Manager) ObserveEvaluation(source string, res model.VguppiResult) {
	m.evaluations.WithLabelValues(source).Inc()
	if res.IsFinite() {
		return
	}
	for metric, v := range res.Map() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			m.nonFiniteResults.WithLabelValues(string(metric)).Inc()
		}
	}
}

// ObserveHTTP records one served request.
func (m *Manager) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the exposition format for the manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

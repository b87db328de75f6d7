package model

import (
	"fmt"
	"strings"
)

// Metric names one of the five vGUPPI outputs.
type Metric string

const (
	MetricU  Metric = "vGUPPI_U"
	MetricR  Metric = "vGUPPI_R"
	MetricD1 Metric = "vGUPPI_D1"
	MetricD2 Metric = "vGUPPI_D2"
	MetricD3 Metric = "vGUPPI_D3"
)

var metricDescriptions = map[Metric]string{
	MetricU:  "Upstream pricing pressure",
	MetricR:  "Rival product-level pricing pressure",
	MetricD1: "Downstream (no EDM, no input sub.)",
	MetricD2: "Downstream (EDM, no input sub.)",
	MetricD3: "Downstream (EDM + input sub.)",
}

// Metrics returns the five metrics in derivation order.
func Metrics() []Metric {
	return []Metric{MetricU, MetricR, MetricD1, MetricD2, MetricD3}
}

// ParseMetric resolves a metric name. Matching is exact after trimming spaces.
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.TrimSpace(s))
	if _, ok := metricDescriptions[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
	return m, nil
}

func (m Metric) String() string { return string(m) }

// Description is a short human-readable label for the metric.
func (m Metric) Description() string {
	return metricDescriptions[m]
}

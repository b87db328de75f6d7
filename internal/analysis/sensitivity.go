package analysis

import (
	"fmt"
	"math"
	"sort"

	"vguppi/internal/heatmap"
	"vguppi/internal/model"

	"gonum.org/v1/gonum/floats"
)

// FieldSensitivity summarizes how one metric moves when a single field is
// swept across its schema range with all other fields held at the base.
type FieldSensitivity struct {
	Field  string
	Label  string
	Metric model.Metric

	BaseInput float64 // the field's value in the base set
	BaseValue float64 // the metric at the base set

	Steps     int
	NonFinite int

	// Statistics over the finite samples only. Zero when none are finite.
	Min    float64
	Max    float64
	P05    float64
	P95    float64
	Spread float64 // Max - Min
}

// Sensitivity sweeps every schema field one at a time.
func Sensitivity(base model.ParameterSet, metric model.Metric, steps int) ([]FieldSensitivity, error) {
	if _, err := model.ParseMetric(string(metric)); err != nil {
		return nil, err
	}
	baseValue := model.ComputeVGUPPIs(base).Value(metric)

	out := make([]FieldSensitivity, 0, len(model.FieldNames()))
	for _, meta := range model.Schema() {
		xs, err := heatmap.Axis(meta.Name, steps)
		if err != nil {
			return nil, err
		}
		baseInput, _ := base.Get(meta.Name)

		s := FieldSensitivity{
			Field:     meta.Name,
			Label:     meta.Label,
			Metric:    metric,
			BaseInput: baseInput,
			BaseValue: baseValue,
			Steps:     steps,
		}

		vals := make([]float64, 0, len(xs))
		for _, x := range xs {
			p, err := base.With(meta.Name, x)
			if err != nil {
				return nil, fmt.Errorf("sweep %s: %w", meta.Name, err)
			}
			v := model.ComputeVGUPPIs(p).Value(metric)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				s.NonFinite++
				continue
			}
			vals = append(vals, v)
		}

		if len(vals) > 0 {
			sort.Float64s(vals)
			s.Min = floats.Min(vals)
			s.Max = floats.Max(vals)
			s.P05 = percentileSorted(vals, 0.05)
			s.P95 = percentileSorted(vals, 0.95)
			s.Spread = s.Max - s.Min
		}
		out = append(out, s)
	}
	return out, nil
}

// RankBySpread sorts descending by Spread. Fields with no finite sample go last;
// ties keep schema order.
func RankBySpread(in []FieldSensitivity) []FieldSensitivity {
	out := make([]FieldSensitivity, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		ai := out[i].NonFinite < out[i].Steps
		aj := out[j].NonFinite < out[j].Steps
		if ai != aj {
			return ai
		}
		return out[i].Spread > out[j].Spread
	})
	return out
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

package heatmap

import (
	"fmt"
	"math"
	"time"

	"vguppi/internal/model"

	"gonum.org/v1/gonum/floats"
)

// DefaultMaxResolution matches the largest grid the dashboard offers. The
// engine itself is uncapped unless WithMaxResolution is given.
const DefaultMaxResolution = 100

// Observer is notified after every completed sweep.
type Observer interface {
	ObserveHeatmap(metric model.Metric, cells, nonFinite int, elapsed time.Duration)
}

// Request selects the sweep: Base is held fixed except for XField and YField.
type Request struct {
	Base       model.ParameterSet
	XField     string
	YField     string
	Metric     model.Metric
	Resolution int
}

type Engine struct {
	maxResolution int
	observer      Observer
}

type Option func(*Engine)

// WithMaxResolution caps the per-axis resolution. Values below 2 leave the
// engine uncapped.
func WithMaxResolution(n int) Option {
	return func(e *Engine) {
		if n >= 2 {
			e.maxResolution = n
		}
	}
}

// WithObserver attaches an observer. A nil observer is allowed.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxResolution returns the configured per-axis cap, or 0 when uncapped.
func (e *Engine) MaxResolution() int { return e.maxResolution }

// Run evaluates the formulas at every (y, x) grid point.
// Cells hit by a zero denominator hold NaN or ±Inf; they never abort the sweep.
func (e *Engine) Run(req Request) (*Grid, error) {
	if req.XField == req.YField {
		return nil, fmt.Errorf("%w: x and y are both %q", ErrInvalidAxisSelection, req.XField)
	}
	if req.Resolution < 2 {
		return nil, fmt.Errorf("%w: %d is below 2", ErrInvalidResolution, req.Resolution)
	}
	if e.maxResolution > 0 && req.Resolution > e.maxResolution {
		return nil, fmt.Errorf("%w: %d not in [2, %d]", ErrInvalidResolution, req.Resolution, e.maxResolution)
	}
	if _, err := model.ParseMetric(string(req.Metric)); err != nil {
		return nil, err
	}
	xs, err := Axis(req.XField, req.Resolution)
	if err != nil {
		return nil, err
	}
	ys, err := Axis(req.YField, req.Resolution)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	z := make([][]float64, len(ys))
	nonFinite := 0
	overrides := make(map[string]float64, 2)

	for i, y := range ys {
		row := make([]float64, len(xs))
		for j, x := range xs {
			overrides[req.XField] = x
			overrides[req.YField] = y
			// Base is a value; WithOverrides returns a fresh copy per cell.
			p, err := req.Base.WithOverrides(overrides)
			if err != nil {
				return nil, err
			}
			v := model.ComputeVGUPPIs(p).Value(req.Metric)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				nonFinite++
			}
			row[j] = v
		}
		z[i] = row
	}

	if e.observer != nil {
		e.observer.ObserveHeatmap(req.Metric, len(xs)*len(ys), nonFinite, time.Since(start))
	}

	return &Grid{
		XField: req.XField,
		YField: req.YField,
		Metric: req.Metric,
		X:      xs,
		Y:      ys,
		Z:      z,
	}, nil
}

// Axis returns n evenly spaced values spanning the field's [min, max].
func Axis(field string, n int) ([]float64, error) {
	meta, err := model.Lookup(field)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAxisSelection, err)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: %d < 2", ErrInvalidResolution, n)
	}
	return floats.Span(make([]float64, n), meta.Min, meta.Max), nil
}

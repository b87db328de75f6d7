package model

import "math"

// The formulas follow IEEE-754 float64 semantics. A zero denominator is not
// an error: it yields ±Inf or NaN in the affected outputs, and the other
// outputs are still computed. Nothing is clamped.

// IntermediateResult holds the derived elasticities used by the vGUPPI formulas.
type IntermediateResult struct {
	EP  float64 `json:"e_p"`  // R's price elasticity contribution: ptr_R * w_R / p_R
	ESD float64 `json:"e_sd"` // input substitution elasticity for D
	ESR float64 `json:"e_sr"` // input substitution elasticity for R
}

// VguppiResult holds the five pricing-pressure indices.
type VguppiResult struct {
	U  float64 `json:"vGUPPI_U"`
	R  float64 `json:"vGUPPI_R"`
	D1 float64 `json:"vGUPPI_D1"`
	D2 float64 `json:"vGUPPI_D2"`
	D3 float64 `json:"vGUPPI_D3"`
}

// Evaluation bundles one formula run.
type Evaluation struct {
	Params        ParameterSet       `json:"params"`
	Intermediates IntermediateResult `json:"intermediates"`
	VGUPPIs       VguppiResult       `json:"vguppis"`
}

// ComputeIntermediates computes e_p, e_sd and e_sr.
// p_R = 0 or m_U = 0 yields non-finite values.
func ComputeIntermediates(p ParameterSet) IntermediateResult {
	ep := p.PtrR * p.WR / p.PR
	// e_sd and e_sr share one formula.
	esd := (1.0 / p.MU) - (p.E * ep)
	esr := (1.0 / p.MU) - (p.E * ep)
	return IntermediateResult{EP: ep, ESD: esd, ESR: esr}
}

// ComputeVGUPPIs computes the five indices for p.
//
// Order matters: vGUPPI_R uses vGUPPI_U, D2 is D1 less the EDM term and D3
// is D2 less the input-substitution term, all for the same parameter set.
func ComputeVGUPPIs(p ParameterSet) VguppiResult {
	return computeWith(p, ComputeIntermediates(p))
}

// Evaluate runs the intermediates and the indices once.
func Evaluate(p ParameterSet) Evaluation {
	in := ComputeIntermediates(p)
	return Evaluation{Params: p, Intermediates: in, VGUPPIs: computeWith(p, in)}
}

func computeWith(p ParameterSet, in IntermediateResult) VguppiResult {
	// Upstream
	u := (p.DrRD * p.MD * p.PD / p.WR) / (1.0 + (p.MR * in.ESR / in.EP))

	// Rival
	r := u * p.PtrU * (p.WR / p.PR) * (1.0 - (u * p.PtrU * in.ESR))

	// Downstream
	d1 := p.DrDU * p.MU * p.WU / p.PD
	d2 := d1 - (p.MUD * p.WD / p.PD)
	d3 := d2 - (in.ESD * (p.MUD * p.MUD) * p.WD / p.PD)

	return VguppiResult{U: u, R: r, D1: d1, D2: d2, D3: d3}
}

// Value returns the field selected by m, or NaN for an unknown metric.
func (r VguppiResult) Value(m Metric) float64 {
	switch m {
	case MetricU:
		return r.U
	case MetricR:
		return r.R
	case MetricD1:
		return r.D1
	case MetricD2:
		return r.D2
	case MetricD3:
		return r.D3
	default:
		return math.NaN()
	}
}

// Map returns the indices keyed by metric name.
func (r VguppiResult) Map() map[Metric]float64 {
	out := make(map[Metric]float64, 5)
	for _, m := range Metrics() {
		out[m] = r.Value(m)
	}
	return out
}

// IsFinite reports whether all five indices are finite.
func (r VguppiResult) IsFinite() bool {
	return finite(r.U, r.R, r.D1, r.D2, r.D3)
}

// IsFinite reports whether all three intermediates are finite.
func (r IntermediateResult) IsFinite() bool {
	return finite(r.EP, r.ESD, r.ESR)
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

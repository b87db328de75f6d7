package models

import (
	"encoding/json"
	"math"

	"vguppi/internal/model"
)

// Float is a float64 that encodes NaN and ±Inf as null, so degenerate
// results survive JSON encoding.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// ParameterInfo describes one input parameter
type ParameterInfo struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
	Group   string  `json:"group"`
}

// GroupInfo lists the parameters of one UI group
type GroupInfo struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// ParametersResponse is the schema as served to the UI
type ParametersResponse struct {
	Parameters []ParameterInfo `json:"parameters"`
	Groups     []GroupInfo     `json:"groups"`
}

// MetricInfo describes one vGUPPI output
type MetricInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Intermediates mirrors model.IntermediateResult
type Intermediates struct {
	EP  Float `json:"e_p"`
	ESD Float `json:"e_sd"`
	ESR Float `json:"e_sr"`
}

// VGUPPIs mirrors model.VguppiResult
type VGUPPIs struct {
	U  Float `json:"vGUPPI_U"`
	R  Float `json:"vGUPPI_R"`
	D1 Float `json:"vGUPPI_D1"`
	D2 Float `json:"vGUPPI_D2"`
	D3 Float `json:"vGUPPI_D3"`
}

// EvaluationResponse represents the result of one scalar evaluation
type EvaluationResponse struct {
	Params        map[string]float64 `json:"params"`
	Intermediates Intermediates      `json:"intermediates"`
	VGUPPIs       VGUPPIs            `json:"vguppis"`
	Finite        bool               `json:"finite"` // false if any output is NaN or Inf
}

// NewEvaluationResponse converts a model evaluation.
func NewEvaluationResponse(ev model.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		Params: ev.Params.Map(),
		Intermediates: Intermediates{
			EP:  Float(ev.Intermediates.EP),
			ESD: Float(ev.Intermediates.ESD),
			ESR: Float(ev.Intermediates.ESR),
		},
		VGUPPIs: VGUPPIs{
			U:  Float(ev.VGUPPIs.U),
			R:  Float(ev.VGUPPIs.R),
			D1: Float(ev.VGUPPIs.D1),
			D2: Float(ev.VGUPPIs.D2),
			D3: Float(ev.VGUPPIs.D3),
		},
		Finite: ev.Intermediates.IsFinite() && ev.VGUPPIs.IsFinite(),
	}
}

// BasePoint marks the request's own parameter values on the grid
type BasePoint struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Value     Float   `json:"value"`      // metric at the exact base values
	CellValue Float   `json:"cell_value"` // metric at the nearest grid cell
}

// HeatmapResponse represents one evaluated surface. Z is [row = y][col = x].
type HeatmapResponse struct {
	XField     string    `json:"x_field"`
	YField     string    `json:"y_field"`
	Metric     string    `json:"metric"`
	Resolution int       `json:"resolution"`
	X          []float64 `json:"x"`
	Y          []float64 `json:"y"`
	Z          [][]Float `json:"z"`
	NonFinite  int       `json:"non_finite"`
	Min        *Float    `json:"min,omitempty"` // finite cells only
	Max        *Float    `json:"max,omitempty"`
	Base       BasePoint `json:"base"`
}

// SensitivityRow is one field's sweep summary
type SensitivityRow struct {
	Rank      int    `json:"rank"`
	Field     string `json:"field"`
	Label     string `json:"label"`
	BaseInput Float  `json:"base_input"`
	BaseValue Float  `json:"base_value"`
	Min       Float  `json:"min"`
	Max       Float  `json:"max"`
	P05       Float  `json:"p05"`
	P95       Float  `json:"p95"`
	Spread    Float  `json:"spread"`
	NonFinite int    `json:"non_finite"`
}

// SensitivityResponse represents the ranked sweep summaries
type SensitivityResponse struct {
	Metric   string           `json:"metric"`
	Steps    int              `json:"steps"`
	Rankings []SensitivityRow `json:"rankings"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

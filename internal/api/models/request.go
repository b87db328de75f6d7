package models

// EvaluateRequest represents the request body for a scalar evaluation.
// Params must carry exactly the 15 schema fields.
type EvaluateRequest struct {
	Params map[string]float64 `json:"params" binding:"required"`
}

// HeatmapRequest represents the request body for a two-field sweep
type HeatmapRequest struct {
	Params     map[string]float64 `json:"params" binding:"required"`
	XField     string             `json:"x_field" binding:"required"`
	YField     string             `json:"y_field" binding:"required"`
	Metric     string             `json:"metric" binding:"required"`
	Resolution *int               `json:"resolution,omitempty"` // absent: 50
}

// SensitivityRequest represents the request body for a one-at-a-time sweep
type SensitivityRequest struct {
	Params map[string]float64 `json:"params" binding:"required"`
	Metric string             `json:"metric" binding:"required"`
	Steps  int                `json:"steps,omitempty"` // default: 21
}

package handlers

import (
	"net/http"

	"vguppi/internal/analysis"
	"vguppi/internal/api/models"
	"vguppi/internal/model"

	"github.com/gin-gonic/gin"
)

const defaultSensitivitySteps = 21

// SensitivityHandler handles one-at-a-time sweep requests
type SensitivityHandler struct {
	maxSteps int
}

// NewSensitivityHandler creates a new sensitivity handler
func NewSensitivityHandler(maxSteps int) *SensitivityHandler {
	return &SensitivityHandler{maxSteps: maxSteps}
}

// Rank handles POST /api/v1/sensitivity
func (h *SensitivityHandler) Rank(c *gin.Context) {
	var req models.SensitivityRequest
	if !bindJSON(c, &req) {
		return
	}

	base, err := model.ParameterSetFromMap(req.Params)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	metric, err := model.ParseMetric(req.Metric)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if req.Steps == 0 {
		req.Steps = defaultSensitivitySteps
	}
	if h.maxSteps > 0 && req.Steps > h.maxSteps {
		req.Steps = h.maxSteps
	}

	rows, err := analysis.Sensitivity(base, metric, req.Steps)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	ranked := analysis.RankBySpread(rows)
	out := make([]models.SensitivityRow, len(ranked))
	for i, r := range ranked {
		out[i] = models.SensitivityRow{
			Rank:      i + 1,
			Field:     r.Field,
			Label:     r.Label,
			BaseInput: models.Float(r.BaseInput),
			BaseValue: models.Float(r.BaseValue),
			Min:       models.Float(r.Min),
			Max:       models.Float(r.Max),
			P05:       models.Float(r.P05),
			P95:       models.Float(r.P95),
			Spread:    models.Float(r.Spread),
			NonFinite: r.NonFinite,
		}
	}

	c.JSON(http.StatusOK, models.SensitivityResponse{
		Metric:   string(metric),
		Steps:    req.Steps,
		Rankings: out,
	})
}

package handlers

import (
	"net/http"

	"vguppi/internal/api/models"
	"vguppi/internal/model"

	"github.com/gin-gonic/gin"
)

// EvaluationRecorder receives one observation per scalar evaluation.
type EvaluationRecorder interface {
	ObserveEvaluation(source string, res model.VguppiResult)
}

// EvaluateHandler handles scalar formula requests
type EvaluateHandler struct {
	rec EvaluationRecorder
}

// NewEvaluateHandler creates a new evaluate handler. rec may be nil.
func NewEvaluateHandler(rec EvaluationRecorder) *EvaluateHandler {
	return &EvaluateHandler{rec: rec}
}

// Defaults handles GET /api/v1/defaults
func (h *EvaluateHandler) Defaults(c *gin.Context) {
	h.respond(c, "defaults", model.DefaultParameterSet())
}

// Evaluate handles POST /api/v1/vguppi
func (h *EvaluateHandler) Evaluate(c *gin.Context) {
	var req models.EvaluateRequest
	if !bindJSON(c, &req) {
		return
	}

	params, err := model.ParameterSetFromMap(req.Params)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	h.respond(c, "evaluate", params)
}

func (h *EvaluateHandler) respond(c *gin.Context, source string, p model.ParameterSet) {
	ev := model.Evaluate(p)
	if h.rec != nil {
		h.rec.ObserveEvaluation(source, ev.VGUPPIs)
	}
	c.JSON(http.StatusOK, models.NewEvaluationResponse(ev))
}

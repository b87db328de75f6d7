package handlers

import (
	"net/http"

	"vguppi/internal/api/models"
	"vguppi/internal/heatmap"
	"vguppi/internal/model"
	"vguppi/pkg/logger"

	"github.com/gin-gonic/gin"
)

const defaultResolution = 50

// HeatmapHandler handles grid sweep requests
type HeatmapHandler struct {
	engine *heatmap.Engine
	log    *logger.Log
}

// NewHeatmapHandler creates a new heatmap handler
func NewHeatmapHandler(engine *heatmap.Engine, log *logger.Log) *HeatmapHandler {
	if engine == nil {
		engine = heatmap.New()
	}
	if log == nil {
		log = logger.Get()
	}
	return &HeatmapHandler{engine: engine, log: log}
}

// Heatmap handles POST /api/v1/heatmap
func (h *HeatmapHandler) Heatmap(c *gin.Context) {
	var req models.HeatmapRequest
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
	resolution := defaultResolution
	if req.Resolution != nil {
		resolution = *req.Resolution
	}

	grid, err := h.engine.Run(heatmap.Request{
		Base:       base,
		XField:     req.XField,
		YField:     req.YField,
		Metric:     metric,
		Resolution: resolution,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	resp := buildHeatmapResponse(grid, base)
	if resp.NonFinite > 0 {
		h.log.WithComponent("heatmap").WithFields(logger.Fields{
			"metric":     resp.Metric,
			"x_field":    resp.XField,
			"y_field":    resp.YField,
			"non_finite": resp.NonFinite,
		}).Debug("grid contains undefined cells")
	}
	c.JSON(http.StatusOK, resp)
}

func buildHeatmapResponse(g *heatmap.Grid, base model.ParameterSet) models.HeatmapResponse {
	z := make([][]models.Float, len(g.Z))
	for i, row := range g.Z {
		out := make([]models.Float, len(row))
		for j, v := range row {
			out[j] = models.Float(v)
		}
		z[i] = out
	}

	// Both fields were validated by the engine.
	bx, _ := base.Get(g.XField)
	by, _ := base.Get(g.YField)
	row, col := g.Nearest(bx, by)

	resp := models.HeatmapResponse{
		XField:     g.XField,
		YField:     g.YField,
		Metric:     string(g.Metric),
		Resolution: g.Resolution(),
		X:          g.X,
		Y:          g.Y,
		Z:          z,
		NonFinite:  g.NonFinite(),
		Base: models.BasePoint{
			X:         bx,
			Y:         by,
			Row:       row,
			Col:       col,
			Value:     models.Float(model.ComputeVGUPPIs(base).Value(g.Metric)),
			CellValue: models.Float(g.At(row, col)),
		},
	}
	if lo, hi, ok := g.Range(); ok {
		minV, maxV := models.Float(lo), models.Float(hi)
		resp.Min, resp.Max = &minV, &maxV
	}
	return resp
}

package handlers

import (
	"net/http"

	"vguppi/internal/api/models"
	"vguppi/internal/model"

	"github.com/gin-gonic/gin"
)

// SchemaHandler serves the parameter and metric catalogues
type SchemaHandler struct{}

// NewSchemaHandler creates a new schema handler
func NewSchemaHandler() *SchemaHandler {
	return &SchemaHandler{}
}

// ListParameters handles GET /api/v1/parameters
func (h *SchemaHandler) ListParameters(c *gin.Context) {
	schema := model.Schema()
	params := make([]models.ParameterInfo, len(schema))
	for i, m := range schema {
		params[i] = models.ParameterInfo{
			Name:    m.Name,
			Label:   m.Label,
			Min:     m.Min,
			Max:     m.Max,
			Step:    m.Step,
			Default: m.Default,
			Group:   m.Group,
		}
	}

	byGroup := model.Groups()
	groups := make([]models.GroupInfo, 0, len(model.GroupOrder))
	for _, g := range model.GroupOrder {
		groups = append(groups, models.GroupInfo{Name: g, Fields: byGroup[g]})
	}

	c.JSON(http.StatusOK, models.ParametersResponse{Parameters: params, Groups: groups})
}

// ListMetrics handles GET /api/v1/metrics
func (h *SchemaHandler) ListMetrics(c *gin.Context) {
	metrics := make([]models.MetricInfo, 0, 5)
	for _, m := range model.Metrics() {
		metrics = append(metrics, models.MetricInfo{Name: string(m), Description: m.Description()})
	}
	c.JSON(http.StatusOK, gin.H{"metrics": metrics})
}

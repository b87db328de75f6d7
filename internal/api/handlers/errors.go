package handlers

import (
	"errors"
	"net/http"

	"vguppi/internal/api/models"
	"vguppi/internal/heatmap"
	"vguppi/internal/model"

	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

// writeDomainError maps the core's sentinel errors to HTTP responses.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrSchemaMismatch):
		writeError(c, http.StatusBadRequest, "SCHEMA_MISMATCH", err)
	case errors.Is(err, heatmap.ErrInvalidAxisSelection):
		writeError(c, http.StatusBadRequest, "INVALID_AXIS_SELECTION", err)
	case errors.Is(err, model.ErrUnknownMetric):
		writeError(c, http.StatusBadRequest, "UNKNOWN_METRIC", err)
	case errors.Is(err, heatmap.ErrInvalidResolution):
		writeError(c, http.StatusBadRequest, "INVALID_RESOLUTION", err)
	default:
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err)
	}
}

// bindJSON decodes the body into req, writing INVALID_REQUEST on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return false
	}
	return true
}

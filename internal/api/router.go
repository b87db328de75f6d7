// Package api exposes the vGUPPI core over HTTP for the dashboard.
package api

import (
	"net/http"
	"os"
	"strings"

	"vguppi/internal/api/handlers"
	"vguppi/internal/api/middleware"
	"vguppi/internal/api/models"
	"vguppi/internal/heatmap"
	"vguppi/pkg/logger"
	"vguppi/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Engine         *heatmap.Engine // defaults to one capped at heatmap.DefaultMaxResolution
	Metrics        *metrics.Manager // optional
	Log            *logger.Log      // optional, defaults to logger.Get()
	AllowedOrigins []string
	StaticDir      string // optional SPA bundle
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = logger.Get()
	}
	if d.Engine == nil {
		opts := []heatmap.Option{heatmap.WithMaxResolution(heatmap.DefaultMaxResolution)}
		if d.Metrics != nil {
			opts = append(opts, heatmap.WithObserver(d.Metrics))
		}
		d.Engine = heatmap.New(opts...)
	}

	router := gin.New()

	var httpRec middleware.HTTPRecorder
	var evalRec handlers.EvaluationRecorder
	if d.Metrics != nil {
		httpRec = d.Metrics
		evalRec = d.Metrics
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(d.AllowedOrigins))
	router.Use(middleware.Logger(d.Log, httpRec))
	router.Use(middleware.ErrorHandler(d.Log))

	schemaHandler := handlers.NewSchemaHandler()
	evaluateHandler := handlers.NewEvaluateHandler(evalRec)
	heatmapHandler := handlers.NewHeatmapHandler(d.Engine, d.Log)
	sensitivityHandler := handlers.NewSensitivityHandler(d.Engine.MaxResolution())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/parameters", schemaHandler.ListParameters)
		v1.GET("/metrics", schemaHandler.ListMetrics)
		v1.GET("/defaults", evaluateHandler.Defaults)

		v1.POST("/vguppi", evaluateHandler.Evaluate)
		v1.POST("/heatmap", heatmapHandler.Heatmap)
		v1.POST("/sensitivity", sensitivityHandler.Rank)
	}

	serveStatic(router, d)
	return router
}

// serveStatic mounts the dashboard bundle with SPA fallback when present.
func serveStatic(router *gin.Engine, d Deps) {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found"},
		})
	}

	if d.StaticDir == "" {
		router.NoRoute(notFound)
		return
	}
	if _, err := os.Stat(d.StaticDir); err != nil {
		d.Log.WithComponent("api").Infof("static directory %s not found, skipping static file serving", d.StaticDir)
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", d.StaticDir+"/assets")
	router.NoRoute(func(c *gin.Context) {
		// Don't serve index.html for API routes
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(d.StaticDir + "/index.html")
	})
	d.Log.WithComponent("api").Infof("serving static files from %s", d.StaticDir)
}

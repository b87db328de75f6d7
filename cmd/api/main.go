package main

import (
	"os"

	"vguppi/internal/api"
	"vguppi/internal/config"
	"vguppi/internal/heatmap"
	"vguppi/pkg/logger"
	"vguppi/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	log := logger.Get()

	cfg, err := config.LoadServer()
	if err != nil {
		log.WithError(err).Fatal("failed to load server config")
	}
	if err := logger.Configure(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		log.WithError(err).Fatal("failed to configure logger")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	wd, _ := os.Getwd()
	log.WithComponent("api").WithFields(logger.Fields{
		"working_directory": wd,
		"env":               cfg.Env,
		"max_resolution":    cfg.MaxResolution,
	}).Info("starting vGUPPI API")

	m := metrics.NewManager()
	engine := heatmap.New(
		heatmap.WithMaxResolution(cfg.MaxResolution),
		heatmap.WithObserver(m),
	)

	router := api.NewRouter(api.Deps{
		Engine:         engine,
		Metrics:        m,
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins(),
		StaticDir:      cfg.StaticDir,
	})

	log.WithComponent("api").Infof("listening on %s", cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

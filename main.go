package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"mental-insights/config"
	"mental-insights/database"
	"mental-insights/handlers"
	"mental-insights/insights"
	"mental-insights/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}

	svc := insights.New(db, log, cfg.ModelPath, cfg.MinDailyRows, cfg.TopFeatures)
	h := handlers.NewInsightHandlers(svc, log)

	// Nightly promotion of yesterday's data, same as hitting the process
	// endpoint with scheduler=true.
	if cfg.PromoteSchedule != "" {
		c := cron.New()
		_, err := c.AddFunc(cfg.PromoteSchedule, func() {
			date := time.Now().UTC().AddDate(0, 0, -1).Format(time.DateOnly)
			if _, err := svc.Promote(date); err != nil {
				log.Warn("scheduled promotion failed", zap.String("date", date), zap.Error(err))
			}
		})
		if err != nil {
			log.Fatal("invalid PROMOTE_SCHEDULE", zap.Error(err))
		}
		c.Start()
		defer c.Stop()
		log.Info("promotion scheduler started", zap.String("schedule", cfg.PromoteSchedule))
	}

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(handlers.RequestLogger(log), gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/insights/daily", h.GetDaily)
		api.POST("/insights/daily/process", h.ProcessDaily)
		api.GET("/insights/summary", h.GetSummary)
		api.POST("/insights/recompute", h.Recompute)
	}

	log.Info("starting insight server", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

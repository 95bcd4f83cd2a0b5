package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/muhfery/ecommerce-insights-backend/api/routes"
	"github.com/muhfery/ecommerce-insights-backend/internal/dataset"
	"github.com/muhfery/ecommerce-insights-backend/internal/feedback"
	"github.com/muhfery/ecommerce-insights-backend/internal/insights"
	"github.com/muhfery/ecommerce-insights-backend/internal/rfm"
	"github.com/muhfery/ecommerce-insights-backend/pkg/config"
	"github.com/muhfery/ecommerce-insights-backend/pkg/logger"
	"github.com/muhfery/ecommerce-insights-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	loader := dataset.NewLoader(cfg.Dataset.Path, cfg.Dataset.TimestampLayouts)
	data, err := dataset.NewProvider(loader)
	if err != nil {
		logg.Error(context.Background(), "failed to load dataset", err)
		os.Exit(1)
	}

	stats := data.Stats()
	statsCtx := logg.WithFields(context.Background(), map[string]any{
		"path":               cfg.Dataset.Path,
		"rows":               stats.Rows,
		"skipped_rows":       stats.SkippedRows,
		"missing_timestamps": stats.MissingTimestamps,
	})
	logg.Info(statsCtx, "dataset loaded")

	rfmService, err := rfm.NewService(data)
	if err != nil {
		logg.Error(context.Background(), "failed to create rfm service", err)
		os.Exit(1)
	}

	insightsService, err := insights.NewService(data)
	if err != nil {
		logg.Error(context.Background(), "failed to create insights service", err)
		os.Exit(1)
	}

	feedbackStore := feedback.NewStore(cfg.Feedback.Path)
	feedbackService, err := feedback.NewService(feedbackStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create feedback service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			data,
			rfmService,
			insightsService,
			feedbackStore,
			feedbackService,
			httpMetrics,
			registry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

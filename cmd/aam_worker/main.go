package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/jobs"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/bootstrap"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/config"
)

// metricsAddr serves the worker's /metrics endpoint.
const metricsAddr = ":9091"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("component", "worker"))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !cfg.Redis.Enabled() {
		logger.Error("REDIS_ADDR is required to run the worker")
		os.Exit(1)
	}

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer app.Close()

	schedule, err := jobs.DefaultSchedule(cfg.Sync)
	if err != nil {
		logger.Error("Failed to build schedule", slog.String("error", err.Error()))
		os.Exit(1)
	}
	accountingJobs := jobs.NewAccountingJobs(app.Services, logger, app.Metrics)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: jobs.RedisOpts(cfg.Redis),
		Logger:    logger,
		Handlers:  accountingJobs.Handlers(),
		Cron:      schedule,
	})
	if err != nil {
		logger.Error("Failed to initialize worker", slog.String("error", err.Error()))
		os.Exit(1)
	}

	metricsSrv := &http.Server{Addr: metricsAddr, Handler: app.Metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Metrics server stopped", slog.String("error", err.Error()))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("Worker starting")
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped", slog.String("error", err.Error()))
		app.Close()
		os.Exit(1)
	}
	logger.Info("Worker stopped")
}

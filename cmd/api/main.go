package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kanishk-2/climate-action-ai/internal/advisor"
	"github.com/kanishk-2/climate-action-ai/internal/climate"
	"github.com/kanishk-2/climate-action-ai/internal/config"
	"github.com/kanishk-2/climate-action-ai/internal/notifications"
	"github.com/kanishk-2/climate-action-ai/internal/observability"
	"github.com/kanishk-2/climate-action-ai/internal/reports"
	"github.com/kanishk-2/climate-action-ai/internal/scheduler"
	"github.com/kanishk-2/climate-action-ai/internal/server"
)

func main() {
	cfg, err := config.LoadConfig(config.PathFromEnv())
	if err != nil {
		zap.NewExample().Fatal("Failed to load config", zap.Error(err))
	}

	logger, err := observability.NewLogger(cfg.Logging.Level, cfg.Logging.Environment)
	if err != nil {
		zap.NewExample().Fatal("Failed to build logger", zap.Error(err))
	}
	defer logger.Sync()

	if cfg.Logging.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	var metrics *observability.Metrics
	var advisorOpts []advisor.Option
	feedOpts := []notifications.Option{notifications.WithAllowedOrigin(cfg.CORS.AllowedOrigin)}
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
		advisorOpts = append(advisorOpts, advisor.WithRecorder(metrics))
		feedOpts = append(feedOpts, notifications.WithConnectionObserver(metrics.SetLiveClients))
	}

	if cfg.AI.APIKey == "" {
		logger.Warn("No OpenAI API key configured; AI features will return fallback responses until one is set")
	}
	adv := advisor.New(advisor.Config{
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		BaseURL: cfg.AI.BaseURL,
	}, logger, advisorOpts...)

	feed := notifications.NewManager(logger, feedOpts...)
	defer feed.Close()

	repo := climate.NewMemoryRepository()
	climateService := climate.NewService(repo, adv, feed, logger)
	climateHandler := climate.NewHandler(climateService, logger)

	reportsService := reports.NewService(climateService, logger)
	reportsHandler := reports.NewHandler(reportsService, logger)

	snapshots := scheduler.NewManager(climateService, logger)
	if err := snapshots.Schedule(cfg.Scheduler.SnapshotCron); err != nil {
		logger.Fatal("Failed to schedule snapshot job", zap.Error(err))
	}
	if err := snapshots.Start(); err != nil {
		logger.Fatal("Failed to start snapshot scheduler", zap.Error(err))
	}
	defer snapshots.Stop()

	router := server.NewEngine(server.Options{
		AllowedOrigin: cfg.CORS.AllowedOrigin,
		MetricsPath:   cfg.Metrics.Path,
		Metrics:       metrics,
		Logger:        logger,
	}, climateHandler, reportsHandler, feed)

	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", srv.Addr))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/client/mt5"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/config"
	cronrunner "github.com/chavapalmarubin-lab/fidus-analytics/internal/cron"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/db"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/handler"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/logger"
	gormrepository "github.com/chavapalmarubin-lab/fidus-analytics/internal/repository/gorm"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/service"

	_ "github.com/chavapalmarubin-lab/fidus-analytics/docs"
)

func main() {
	cfgPath := os.Getenv("FIDUS_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("FIDUS_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	if err := store.EnsureSchema(context.Background()); err != nil {
		logger.Fatal("schema migration failed", zap.Error(err))
	}

	bridgeHTTP := &http.Client{Timeout: cfg.Bridge.Timeout}
	bridge := mt5.NewClient(bridgeHTTP, cfg.Bridge.BaseURL, cfg.Bridge.APIKey)

	syncSvc := &service.TradeSyncService{Repo: store, Source: bridge, Logger: logger}
	dailySvc := &service.DailyPerformanceService{Repo: store, Logger: logger}
	rollupSvc := &service.PeriodRollupService{Repo: store, Logger: logger}
	fundSvc := &service.FundPerformanceService{Repo: store, Logger: logger, FundCodes: cfg.Funds.Codes}
	querySvc := &service.AnalyticsQueryService{Repo: store, Logger: logger}
	orchestrator := &service.Orchestrator{
		Repo:   store,
		Sync:   syncSvc,
		Daily:  dailySvc,
		Rollup: rollupSvc,
		Sched:  cfg.Sync,
		Logger: logger,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	fundHandler := &handler.FundHandler{Funds: fundSvc}
	fundHandler.Register(engine)
	analyticsHandler := &handler.AnalyticsHandler{Query: querySvc}
	analyticsHandler.Register(engine)
	syncHandler := &handler.SyncHandler{Orchestrator: orchestrator, Repo: store}
	syncHandler.Register(engine)
	performanceHandler := &handler.PerformanceHandler{Repo: store}
	performanceHandler.Register(engine)
	accountHandler := &handler.AccountHandler{Repo: store, FundCodes: cfg.Funds.Codes}
	accountHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		_, err = cronRunner.Add(cfg.Cron.DailySync, func(ctx context.Context) {
			target := time.Now().UTC().AddDate(0, 0, -1)
			result, err := orchestrator.RunDailySync(ctx, target)
			if err != nil {
				logger.Error("cron daily sync aborted", zap.Error(err))
				return
			}
			if !result.Success {
				logger.Warn("cron daily sync finished with errors",
					zap.String("sync_date", result.SyncDate),
					zap.Strings("errors", result.Errors),
				)
			}
		})
		if err != nil {
			logger.Warn("cron register daily sync failed", zap.Error(err))
		}
		cronRunner.Start()
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	if cfg.Cron.Enabled {
		cronRunner.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", zap.Error(err))
	}
}

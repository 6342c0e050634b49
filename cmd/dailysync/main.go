// Command dailysync runs one daily sync for a target date and exits. It is
// meant to be driven by an external scheduler; the scheduler should serialize
// runs so that at most one invocation per date is in flight.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/client/mt5"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/config"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/db"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/logger"
	gormrepository "github.com/chavapalmarubin-lab/fidus-analytics/internal/repository/gorm"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/service"
)

func main() {
	dateFlag := flag.String("date", "", "target date YYYY-MM-DD (default: yesterday)")
	flag.Parse()

	target := time.Now().UTC().AddDate(0, 0, -1)
	if *dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", *dateFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -date %q: %v\n", *dateFlag, err)
			os.Exit(2)
		}
		target = parsed
	}

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
	bridgeHTTP := &http.Client{Timeout: cfg.Bridge.Timeout}
	bridge := mt5.NewClient(bridgeHTTP, cfg.Bridge.BaseURL, cfg.Bridge.APIKey)

	orchestrator := &service.Orchestrator{
		Repo:   store,
		Sync:   &service.TradeSyncService{Repo: store, Source: bridge, Logger: logger},
		Daily:  &service.DailyPerformanceService{Repo: store, Logger: logger},
		Rollup: &service.PeriodRollupService{Repo: store, Logger: logger},
		Sched:  cfg.Sync,
		Logger: logger,
	}

	result, err := orchestrator.RunDailySync(context.Background(), target)
	if err != nil {
		logger.Fatal("daily sync aborted", zap.Error(err))
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("failed to encode result", zap.Error(err))
	}
	fmt.Println(string(out))

	if !result.Success {
		os.Exit(1)
	}
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/config"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/models"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/repository"
)

// SyncRunResult is the structured outcome of one daily sync invocation.
// Success is true iff Errors is empty.
type SyncRunResult struct {
	SyncDate              string    `json:"sync_date"`
	StartedAt             time.Time `json:"started_at"`
	CompletedAt           time.Time `json:"completed_at"`
	DurationSeconds       float64   `json:"duration_seconds"`
	AccountsProcessed     int       `json:"accounts_processed"`
	TotalTradesSynced     int       `json:"total_trades_synced"`
	DailySummariesCreated int       `json:"daily_summaries_created"`
	Errors                []string  `json:"errors"`
	Success               bool      `json:"success"`
}

// Orchestrator sequences the nightly batch: ensure schema, then per tracked
// account (in configured order) sync trades and compute the daily summary,
// then roll up periods when the date closes a week or month.
type Orchestrator struct {
	Repo   repository.Repository
	Sync   *TradeSyncService
	Daily  *DailyPerformanceService
	Rollup *PeriodRollupService
	Sched  config.SyncConfig
	Logger *zap.Logger
}

// RunDailySync executes the batch for the UTC day of date. One account's
// failure is recorded and the loop continues; only a schema failure aborts the
// whole run, since uniqueness constraints are the only duplicate guard.
func (o *Orchestrator) RunDailySync(ctx context.Context, date time.Time) (SyncRunResult, error) {
	day := UTCDay(date)
	started := time.Now().UTC()
	result := SyncRunResult{
		SyncDate:  day.Format("2006-01-02"),
		StartedAt: started,
		Errors:    []string{},
	}
	if o == nil || o.Repo == nil || o.Sync == nil || o.Daily == nil {
		return result, fmt.Errorf("orchestrator not configured")
	}

	if err := o.Repo.EnsureSchema(ctx); err != nil {
		return result, fmt.Errorf("ensure schema: %w", err)
	}

	timeout := o.Sched.AccountTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}

	for _, account := range o.Sched.AccountNumbers() {
		result.AccountsProcessed++
		if err := o.runAccount(ctx, account, day, timeout, &result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("account %d: %v", account, err))
			if o.Logger != nil {
				o.Logger.Warn("account sync failed",
					zap.Int64("account", account),
					zap.Time("date", day),
					zap.Error(err),
				)
			}
		}
	}

	if o.Rollup != nil {
		o.runRollups(ctx, day, &result)
	}

	completed := time.Now().UTC()
	result.CompletedAt = completed
	result.DurationSeconds = completed.Sub(started).Seconds()
	result.Success = len(result.Errors) == 0

	o.recordRun(ctx, day, &result)

	if o.Logger != nil {
		o.Logger.Info("daily sync finished",
			zap.String("sync_date", result.SyncDate),
			zap.Int("accounts", result.AccountsProcessed),
			zap.Int("trades", result.TotalTradesSynced),
			zap.Int("summaries", result.DailySummariesCreated),
			zap.Int("errors", len(result.Errors)),
			zap.Bool("success", result.Success),
		)
	}
	return result, nil
}

// RunAccountSync re-runs the sync and daily calculation for a single tracked
// account. Used for operator re-runs; rollups are not triggered.
func (o *Orchestrator) RunAccountSync(ctx context.Context, account int64, date time.Time) (SyncRunResult, error) {
	day := UTCDay(date)
	started := time.Now().UTC()
	result := SyncRunResult{
		SyncDate:  day.Format("2006-01-02"),
		StartedAt: started,
		Errors:    []string{},
	}
	if o == nil || o.Repo == nil || o.Sync == nil || o.Daily == nil {
		return result, fmt.Errorf("orchestrator not configured")
	}
	if !o.Sched.IsTracked(account) {
		return result, fmt.Errorf("account %d is not tracked", account)
	}

	if err := o.Repo.EnsureSchema(ctx); err != nil {
		return result, fmt.Errorf("ensure schema: %w", err)
	}

	timeout := o.Sched.AccountTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}

	result.AccountsProcessed = 1
	if err := o.runAccount(ctx, account, day, timeout, &result); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("account %d: %v", account, err))
	}

	completed := time.Now().UTC()
	result.CompletedAt = completed
	result.DurationSeconds = completed.Sub(started).Seconds()
	result.Success = len(result.Errors) == 0

	o.recordRun(ctx, day, &result)
	return result, nil
}

// runAccount syncs then calculates for one account under a per-account
// deadline, so a single unreachable bridge cannot stall the whole run.
func (o *Orchestrator) runAccount(ctx context.Context, account int64, day time.Time, timeout time.Duration, result *SyncRunResult) error {
	acctCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	trades, err := o.Sync.Sync(acctCtx, account, day)
	if err != nil {
		return err
	}
	result.TotalTradesSynced += len(trades)

	if _, err := o.Daily.Calculate(acctCtx, account, day); err != nil {
		return err
	}
	result.DailySummariesCreated++
	return nil
}

func (o *Orchestrator) runRollups(ctx context.Context, day time.Time, result *SyncRunResult) {
	weekEnd := IsWeekEnd(day)
	monthEnd := IsMonthEnd(day)
	if !weekEnd && !monthEnd {
		return
	}
	for _, account := range o.Sched.AccountNumbers() {
		if weekEnd {
			if _, err := o.Rollup.RollupWeek(ctx, account, day); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("account %d: weekly rollup: %v", account, err))
			}
		}
		if monthEnd {
			if _, err := o.Rollup.RollupMonth(ctx, account, day); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("account %d: monthly rollup: %v", account, err))
			}
		}
	}
}

func (o *Orchestrator) recordRun(ctx context.Context, day time.Time, result *SyncRunResult) {
	errsJSON, err := json.Marshal(result.Errors)
	if err != nil {
		errsJSON = []byte("[]")
	}
	run := &models.SyncRun{
		SyncDate:              day,
		StartedAt:             result.StartedAt,
		CompletedAt:           result.CompletedAt,
		DurationSeconds:       result.DurationSeconds,
		AccountsProcessed:     result.AccountsProcessed,
		TotalTradesSynced:     result.TotalTradesSynced,
		DailySummariesCreated: result.DailySummariesCreated,
		Errors:                datatypes.JSON(errsJSON),
		Success:               result.Success,
	}
	if err := o.Repo.InsertSyncRun(ctx, run); err != nil && o.Logger != nil {
		o.Logger.Warn("failed to record sync run", zap.Error(err))
	}
}

package repository

import (
	"context"
	"time"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/models"
)

// Repository is the storage boundary for the analytics engine. Every write is
// an idempotent upsert keyed by the table's natural unique index, so a sync
// run can be safely repeated for the same date.
type Repository interface {
	// EnsureSchema creates tables and unique indexes. Uniqueness is the sole
	// duplicate-prevention mechanism, so a run must not proceed when this fails.
	EnsureSchema(ctx context.Context) error

	// Trades.
	BulkUpsertTrades(ctx context.Context, items []models.Trade) error
	ListTradesByCloseTime(ctx context.Context, account int64, start, end time.Time) ([]models.Trade, error)

	// Daily summaries.
	UpsertDailyPerformance(ctx context.Context, item *models.DailyPerformance) error
	GetDailyPerformance(ctx context.Context, account int64, date time.Time) (*models.DailyPerformance, error)
	ListDailyPerformance(ctx context.Context, params ListDailyPerformanceParams) ([]models.DailyPerformance, error)

	// Period rollups.
	UpsertPeriodPerformance(ctx context.Context, item *models.PeriodPerformance) error
	ListPeriodPerformance(ctx context.Context, params ListPeriodPerformanceParams) ([]models.PeriodPerformance, error)

	// Fund allocations (read-mostly; the upsert exists for the bootstrap path).
	UpsertAccount(ctx context.Context, item *models.Account) error
	ListAccountsByFund(ctx context.Context, fundCode string) ([]models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)

	// Sync audit trail.
	InsertSyncRun(ctx context.Context, item *models.SyncRun) error
	ListSyncRuns(ctx context.Context, limit int) ([]models.SyncRun, error)
}

type ListDailyPerformanceParams struct {
	Accounts []int64
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

type ListPeriodPerformanceParams struct {
	PeriodType string
	Account    *int64
	Since      *time.Time
	Limit      int
	Offset     int
}

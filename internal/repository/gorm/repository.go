package gormrepository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/models"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).AutoMigrate(
		&models.Trade{},
		&models.DailyPerformance{},
		&models.PeriodPerformance{},
		&models.Account{},
		&models.SyncRun{},
	)
}

// --- Trades -----------------------------------------------------------------

func (s *Store) BulkUpsertTrades(ctx context.Context, items []models.Trade) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ticket"}, {Name: "account"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"symbol",
			"side",
			"volume",
			"open_price",
			"close_price",
			"open_time",
			"close_time",
			"profit",
			"commission",
			"swap",
			"comment",
			"updated_at",
		}),
	}).CreateInBatches(items, 200).Error
}

func (s *Store) ListTradesByCloseTime(ctx context.Context, account int64, start, end time.Time) ([]models.Trade, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Trade
	err := s.db.WithContext(ctx).
		Where("account = ?", account).
		Where("close_time >= ?", start).
		Where("close_time < ?", end).
		Order("close_time asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// --- Daily summaries --------------------------------------------------------

func (s *Store) UpsertDailyPerformance(ctx context.Context, item *models.DailyPerformance) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}, {Name: "account"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_trades",
			"winning_trades",
			"losing_trades",
			"breakeven_trades",
			"total_pnl",
			"gross_profit",
			"gross_loss",
			"win_rate",
			"profit_factor",
			"largest_win",
			"largest_loss",
			"avg_win",
			"avg_loss",
			"instruments_traded",
			"status",
			"calculated_at",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetDailyPerformance(ctx context.Context, account int64, date time.Time) (*models.DailyPerformance, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.DailyPerformance
	err := s.db.WithContext(ctx).
		Where("account = ?", account).
		Where("date = ?", date).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListDailyPerformance(ctx context.Context, params repository.ListDailyPerformanceParams) ([]models.DailyPerformance, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.DailyPerformance{})
	if len(params.Accounts) > 0 {
		query = query.Where("account IN ?", params.Accounts)
	}
	if params.From != nil && !params.From.IsZero() {
		query = query.Where("date >= ?", *params.From)
	}
	if params.To != nil && !params.To.IsZero() {
		query = query.Where("date < ?", *params.To)
	}
	query = query.Order("date asc").Order("account asc")
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}
	var items []models.DailyPerformance
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Period rollups ---------------------------------------------------------

func (s *Store) UpsertPeriodPerformance(ctx context.Context, item *models.PeriodPerformance) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "period_type"}, {Name: "period_start"}, {Name: "account"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"period_end",
			"trading_days",
			"total_trades",
			"winning_trades",
			"losing_trades",
			"breakeven_trades",
			"total_pnl",
			"gross_profit",
			"gross_loss",
			"win_rate",
			"profit_factor",
			"largest_win",
			"largest_loss",
			"instruments_traded",
			"status",
			"calculated_at",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) ListPeriodPerformance(ctx context.Context, params repository.ListPeriodPerformanceParams) ([]models.PeriodPerformance, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.PeriodPerformance{})
	if params.PeriodType != "" {
		query = query.Where("period_type = ?", params.PeriodType)
	}
	if params.Account != nil {
		query = query.Where("account = ?", *params.Account)
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("period_start >= ?", *params.Since)
	}
	query = query.Order("period_start desc").Order("account asc")
	limit := params.Limit
	if limit <= 0 {
		limit = 200
	}
	query = query.Limit(limit)
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}
	var items []models.PeriodPerformance
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Fund allocations -------------------------------------------------------

func (s *Store) UpsertAccount(ctx context.Context, item *models.Account) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"fund_code",
			"balance",
			"equity",
			"true_pnl",
			"profit_withdrawals",
			"manager_name",
			"broker",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) ListAccountsByFund(ctx context.Context, fundCode string) ([]models.Account, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Account
	err := s.db.WithContext(ctx).
		Where("fund_code = ?", fundCode).
		Order("account_id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Account
	if err := s.db.WithContext(ctx).Order("account_id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Sync audit trail -------------------------------------------------------

func (s *Store) InsertSyncRun(ctx context.Context, item *models.SyncRun) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListSyncRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 30
	}
	if limit > 500 {
		limit = 500
	}
	var items []models.SyncRun
	err := s.db.WithContext(ctx).
		Order("started_at desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/client/mt5"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/models"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// Upserts key on the same natural indexes as the real store so idempotence
// shows up as stable map sizes.
type stubRepo struct {
	trades   map[string]models.Trade
	dailies  map[string]models.DailyPerformance
	periods  map[string]models.PeriodPerformance
	accounts []models.Account
	runs     []models.SyncRun

	schemaErr     error
	upsertErr     error
	listTradesErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		trades:  map[string]models.Trade{},
		dailies: map[string]models.DailyPerformance{},
		periods: map[string]models.PeriodPerformance{},
	}
}

func tradeKey(ticket, account int64) string {
	return fmt.Sprintf("%d/%d", ticket, account)
}

func dailyKey(account int64, date time.Time) string {
	return fmt.Sprintf("%d/%s", account, date.Format("2006-01-02"))
}

func periodKey(periodType string, start time.Time, account int64) string {
	return fmt.Sprintf("%s/%s/%d", periodType, start.Format("2006-01-02"), account)
}

func (s *stubRepo) EnsureSchema(ctx context.Context) error {
	return s.schemaErr
}

func (s *stubRepo) BulkUpsertTrades(ctx context.Context, items []models.Trade) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	for i := range items {
		s.trades[tradeKey(items[i].Ticket, items[i].Account)] = items[i]
	}
	return nil
}

func (s *stubRepo) ListTradesByCloseTime(ctx context.Context, account int64, start, end time.Time) ([]models.Trade, error) {
	if s.listTradesErr != nil {
		return nil, s.listTradesErr
	}
	var out []models.Trade
	for _, t := range s.trades {
		if t.Account != account {
			continue
		}
		if t.CloseTime.Before(start) || !t.CloseTime.Before(end) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *stubRepo) UpsertDailyPerformance(ctx context.Context, item *models.DailyPerformance) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.dailies[dailyKey(item.Account, item.Date)] = *item
	return nil
}

func (s *stubRepo) GetDailyPerformance(ctx context.Context, account int64, date time.Time) (*models.DailyPerformance, error) {
	item, ok := s.dailies[dailyKey(account, date)]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *stubRepo) ListDailyPerformance(ctx context.Context, params repository.ListDailyPerformanceParams) ([]models.DailyPerformance, error) {
	var out []models.DailyPerformance
	for _, d := range s.dailies {
		if len(params.Accounts) > 0 && !containsAccount(params.Accounts, d.Account) {
			continue
		}
		if params.From != nil && d.Date.Before(*params.From) {
			continue
		}
		if params.To != nil && !d.Date.Before(*params.To) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *stubRepo) UpsertPeriodPerformance(ctx context.Context, item *models.PeriodPerformance) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.periods[periodKey(item.PeriodType, item.PeriodStart, item.Account)] = *item
	return nil
}

func (s *stubRepo) ListPeriodPerformance(ctx context.Context, params repository.ListPeriodPerformanceParams) ([]models.PeriodPerformance, error) {
	var out []models.PeriodPerformance
	for _, p := range s.periods {
		if params.PeriodType != "" && p.PeriodType != params.PeriodType {
			continue
		}
		if params.Account != nil && p.Account != *params.Account {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *stubRepo) UpsertAccount(ctx context.Context, item *models.Account) error {
	for i := range s.accounts {
		if s.accounts[i].AccountID == item.AccountID {
			s.accounts[i] = *item
			return nil
		}
	}
	s.accounts = append(s.accounts, *item)
	return nil
}

func (s *stubRepo) ListAccountsByFund(ctx context.Context, fundCode string) ([]models.Account, error) {
	var out []models.Account
	for i := range s.accounts {
		if s.accounts[i].FundCode == fundCode {
			out = append(out, s.accounts[i])
		}
	}
	return out, nil
}

func (s *stubRepo) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return append([]models.Account(nil), s.accounts...), nil
}

func (s *stubRepo) InsertSyncRun(ctx context.Context, item *models.SyncRun) error {
	s.runs = append(s.runs, *item)
	return nil
}

func (s *stubRepo) ListSyncRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	out := append([]models.SyncRun(nil), s.runs...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func containsAccount(accounts []int64, account int64) bool {
	for _, a := range accounts {
		if a == account {
			return true
		}
	}
	return false
}

// fakeSource serves canned raw trades per account, or a fixed error.
type fakeSource struct {
	trades map[int64][]mt5.RawTrade
	errs   map[int64]error
	calls  int
}

func (f *fakeSource) FetchClosedTrades(ctx context.Context, account int64, start, end time.Time) ([]mt5.RawTrade, error) {
	f.calls++
	if err, ok := f.errs[account]; ok {
		return nil, err
	}
	return f.trades[account], nil
}

var _ repository.Repository = (*stubRepo)(nil)
var _ TradeSource = (*fakeSource)(nil)

package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/models"
)

func seedTrade(repo *stubRepo, ticket, account int64, symbol string, profit float64, closeAt time.Time) {
	repo.trades[tradeKey(ticket, account)] = models.Trade{
		Ticket:    ticket,
		Account:   account,
		Symbol:    symbol,
		Side:      models.TradeSideBuy,
		Profit:    decimal.NewFromFloat(profit),
		CloseTime: closeAt,
	}
}

func TestCalculate_WinAndLoss(t *testing.T) {
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	repo := newStubRepo()
	seedTrade(repo, 1, 886557, "XAUUSD", 500, day.Add(3*time.Hour))
	seedTrade(repo, 2, 886557, "EURUSD", -100, day.Add(7*time.Hour))
	// Different day and different account: both must stay out of scope.
	seedTrade(repo, 3, 886557, "XAUUSD", 999, day.AddDate(0, 0, 1))
	seedTrade(repo, 4, 886602, "XAUUSD", 999, day.Add(time.Hour))

	svc := &DailyPerformanceService{Repo: repo, Logger: zap.NewNop()}
	summary, err := svc.Calculate(context.Background(), 886557, day)
	if err != nil {
		t.Fatalf("err=%v", err)
	}

	if summary.TotalTrades != 2 || summary.WinningTrades != 1 || summary.LosingTrades != 1 || summary.BreakevenTrades != 0 {
		t.Fatalf("counts=%d/%d/%d/%d", summary.TotalTrades, summary.WinningTrades, summary.LosingTrades, summary.BreakevenTrades)
	}
	if !summary.GrossProfit.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("gross_profit=%s", summary.GrossProfit)
	}
	if !summary.GrossLoss.Equal(decimal.NewFromInt(-100)) {
		t.Fatalf("gross_loss=%s", summary.GrossLoss)
	}
	if !summary.TotalPnL.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("total_pnl=%s", summary.TotalPnL)
	}
	if !summary.WinRate.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("win_rate=%s", summary.WinRate)
	}
	if !summary.ProfitFactor.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("profit_factor=%s", summary.ProfitFactor)
	}
	if summary.Status != models.DayStatusProfitable {
		t.Fatalf("status=%q", summary.Status)
	}
	if !summary.LargestWin.Equal(decimal.NewFromInt(500)) || !summary.LargestLoss.Equal(decimal.NewFromInt(-100)) {
		t.Fatalf("largest=%s/%s", summary.LargestWin, summary.LargestLoss)
	}

	var instruments []string
	if err := json.Unmarshal(summary.InstrumentsTraded, &instruments); err != nil {
		t.Fatalf("instruments json: %v", err)
	}
	if len(instruments) != 2 || instruments[0] != "EURUSD" || instruments[1] != "XAUUSD" {
		t.Fatalf("instruments=%v", instruments)
	}

	stored, err := repo.GetDailyPerformance(context.Background(), 886557, day)
	if err != nil || stored == nil {
		t.Fatalf("stored=%v err=%v", stored, err)
	}
}

func TestCalculate_NoTrades(t *testing.T) {
	day := time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)
	repo := newStubRepo()
	svc := &DailyPerformanceService{Repo: repo, Logger: zap.NewNop()}

	summary, err := svc.Calculate(context.Background(), 886557, day)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if summary.Status != models.DayStatusNoTrading {
		t.Fatalf("status=%q want no_trading", summary.Status)
	}
	if summary.TotalTrades != 0 || !summary.TotalPnL.IsZero() || !summary.WinRate.IsZero() || !summary.ProfitFactor.IsZero() {
		t.Fatalf("summary not zeroed: %+v", summary)
	}
	// The zero-activity day is persisted, so it stays distinguishable from a
	// day that was never synced.
	if _, ok := repo.dailies[dailyKey(886557, day)]; !ok {
		t.Fatalf("no_trading summary not stored")
	}
}

func TestCalculate_ProfitFactorSentinel(t *testing.T) {
	day := time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
	repo := newStubRepo()
	seedTrade(repo, 1, 886557, "XAUUSD", 250, day.Add(time.Hour))
	seedTrade(repo, 2, 886557, "XAUUSD", 130, day.Add(2*time.Hour))

	svc := &DailyPerformanceService{Repo: repo, Logger: zap.NewNop()}
	summary, err := svc.Calculate(context.Background(), 886557, day)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !summary.ProfitFactor.Equal(decimal.NewFromFloat(999.99)) {
		t.Fatalf("profit_factor=%s want 999.99", summary.ProfitFactor)
	}
}

func TestCalculate_PartitionInvariant(t *testing.T) {
	day := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	repo := newStubRepo()
	seedTrade(repo, 1, 886557, "XAUUSD", 80, day.Add(time.Hour))
	seedTrade(repo, 2, 886557, "EURUSD", -20, day.Add(2*time.Hour))
	seedTrade(repo, 3, 886557, "USDJPY", 0, day.Add(3*time.Hour))
	seedTrade(repo, 4, 886557, "XAUUSD", -60, day.Add(4*time.Hour))

	svc := &DailyPerformanceService{Repo: repo, Logger: zap.NewNop()}
	summary, err := svc.Calculate(context.Background(), 886557, day)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if summary.WinningTrades+summary.LosingTrades+summary.BreakevenTrades != summary.TotalTrades {
		t.Fatalf("partition broken: %d+%d+%d != %d",
			summary.WinningTrades, summary.LosingTrades, summary.BreakevenTrades, summary.TotalTrades)
	}
	if !summary.TotalPnL.Equal(summary.GrossProfit.Add(summary.GrossLoss)) {
		t.Fatalf("pnl invariant broken: %s != %s + %s", summary.TotalPnL, summary.GrossProfit, summary.GrossLoss)
	}
	if summary.Status != models.DayStatusBreakeven {
		t.Fatalf("status=%q want breakeven", summary.Status)
	}
}

func TestCalculate_Overwrite(t *testing.T) {
	day := time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC)
	repo := newStubRepo()
	seedTrade(repo, 1, 886557, "XAUUSD", -30, day.Add(time.Hour))

	svc := &DailyPerformanceService{Repo: repo, Logger: zap.NewNop()}
	if _, err := svc.Calculate(context.Background(), 886557, day); err != nil {
		t.Fatalf("err=%v", err)
	}
	seedTrade(repo, 2, 886557, "XAUUSD", 90, day.Add(2*time.Hour))
	if _, err := svc.Calculate(context.Background(), 886557, day); err != nil {
		t.Fatalf("err=%v", err)
	}

	if len(repo.dailies) != 1 {
		t.Fatalf("dailies=%d want 1", len(repo.dailies))
	}
	stored := repo.dailies[dailyKey(886557, day)]
	if stored.TotalTrades != 2 || stored.Status != models.DayStatusProfitable {
		t.Fatalf("stored=%+v", stored)
	}
}

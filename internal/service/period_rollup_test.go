package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/models"
)

func seedDaily(repo *stubRepo, account int64, date time.Time, wins, losses int, grossProfit, grossLoss float64) {
	d := models.DailyPerformance{
		Date:              date,
		Account:           account,
		TotalTrades:       wins + losses,
		WinningTrades:     wins,
		LosingTrades:      losses,
		GrossProfit:       decimal.NewFromFloat(grossProfit),
		GrossLoss:         decimal.NewFromFloat(grossLoss),
		TotalPnL:          decimal.NewFromFloat(grossProfit + grossLoss),
		LargestWin:        decimal.NewFromFloat(grossProfit),
		LargestLoss:       decimal.NewFromFloat(grossLoss),
		InstrumentsTraded: emptyInstruments(),
		Status:            models.DayStatusProfitable,
		CalculatedAt:      date.Add(23 * time.Hour),
	}
	repo.dailies[dailyKey(account, date)] = d
}

func TestIsWeekEnd(t *testing.T) {
	sunday := time.Date(2025, 1, 12, 15, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	if !IsWeekEnd(sunday) {
		t.Fatalf("2025-01-12 is a Sunday")
	}
	if IsWeekEnd(monday) {
		t.Fatalf("2025-01-13 is not a Sunday")
	}
}

func TestIsMonthEnd(t *testing.T) {
	cases := []struct {
		date string
		want bool
	}{
		{"2025-01-31", true},
		{"2025-02-28", true},
		{"2024-02-29", true},
		{"2024-02-28", false},
		{"2025-04-30", true},
		{"2025-04-29", false},
	}
	for _, tc := range cases {
		d, err := time.Parse("2006-01-02", tc.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := IsMonthEnd(d); got != tc.want {
			t.Fatalf("IsMonthEnd(%s)=%v want %v", tc.date, got, tc.want)
		}
	}
}

func TestRollupWeek(t *testing.T) {
	// Week Mon 2025-01-06 .. Sun 2025-01-12.
	weekEnd := time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
	repo := newStubRepo()
	seedDaily(repo, 886557, weekEnd.AddDate(0, 0, -5), 2, 1, 300, -50)
	seedDaily(repo, 886557, weekEnd.AddDate(0, 0, -2), 1, 2, 120, -200)
	// Outside the week: must not be rolled up.
	seedDaily(repo, 886557, weekEnd.AddDate(0, 0, -9), 9, 0, 9999, 0)
	// Other accounts must not leak into the rollup.
	seedDaily(repo, 886602, weekEnd.AddDate(0, 0, -3), 5, 0, 500, 0)

	svc := &PeriodRollupService{Repo: repo, Logger: zap.NewNop()}
	rollup, err := svc.RollupWeek(context.Background(), 886557, weekEnd)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rollup == nil {
		t.Fatalf("rollup is nil")
	}

	wantStart := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	if !rollup.PeriodStart.Equal(wantStart) {
		t.Fatalf("period_start=%v want %v", rollup.PeriodStart, wantStart)
	}
	if rollup.TotalTrades != 6 || rollup.WinningTrades != 3 || rollup.LosingTrades != 3 {
		t.Fatalf("counts=%d/%d/%d", rollup.TotalTrades, rollup.WinningTrades, rollup.LosingTrades)
	}
	if !rollup.TotalPnL.Equal(decimal.NewFromInt(170)) {
		t.Fatalf("total_pnl=%s want 170", rollup.TotalPnL)
	}
	if !rollup.WinRate.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("win_rate=%s want 50", rollup.WinRate)
	}
	// |420 / -250| = 1.68
	if !rollup.ProfitFactor.Equal(decimal.NewFromFloat(1.68)) {
		t.Fatalf("profit_factor=%s want 1.68", rollup.ProfitFactor)
	}
	if rollup.TradingDays != 2 {
		t.Fatalf("trading_days=%d want 2", rollup.TradingDays)
	}
	if rollup.Status != models.DayStatusProfitable {
		t.Fatalf("status=%q", rollup.Status)
	}

	// Re-running overwrites the same row.
	if _, err := svc.RollupWeek(context.Background(), 886557, weekEnd); err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(repo.periods) != 1 {
		t.Fatalf("periods=%d want 1", len(repo.periods))
	}
}

func TestRollupWeek_RejectsNonSunday(t *testing.T) {
	svc := &PeriodRollupService{Repo: newStubRepo(), Logger: zap.NewNop()}
	if _, err := svc.RollupWeek(context.Background(), 886557, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Fatalf("expected error for non-Sunday week end")
	}
}

func TestRollupWeek_NoDailies(t *testing.T) {
	repo := newStubRepo()
	svc := &PeriodRollupService{Repo: repo, Logger: zap.NewNop()}
	rollup, err := svc.RollupWeek(context.Background(), 886557, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rollup != nil {
		t.Fatalf("rollup=%+v want nil", rollup)
	}
	if len(repo.periods) != 0 {
		t.Fatalf("periods=%d want 0", len(repo.periods))
	}
}

func TestRollupMonth(t *testing.T) {
	monthEnd := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	repo := newStubRepo()
	seedDaily(repo, 886557, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), 1, 0, 100, 0)
	seedDaily(repo, 886557, time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), 0, 1, 0, -40)
	// December stays out.
	seedDaily(repo, 886557, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 7, 0, 700, 0)

	svc := &PeriodRollupService{Repo: repo, Logger: zap.NewNop()}
	rollup, err := svc.RollupMonth(context.Background(), 886557, monthEnd)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rollup == nil {
		t.Fatalf("rollup is nil")
	}
	if rollup.PeriodType != models.PeriodTypeMonthly {
		t.Fatalf("period_type=%q", rollup.PeriodType)
	}
	wantStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !rollup.PeriodStart.Equal(wantStart) {
		t.Fatalf("period_start=%v", rollup.PeriodStart)
	}
	if rollup.TotalTrades != 2 {
		t.Fatalf("total_trades=%d want 2", rollup.TotalTrades)
	}
	if !rollup.TotalPnL.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("total_pnl=%s want 60", rollup.TotalPnL)
	}
}

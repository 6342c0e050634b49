package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/models"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/repository"
)

// PeriodRollupService folds daily summaries into weekly and monthly rollups.
// Rollup fields are re-derived from the summed daily fields, never from raw
// trades: counts and gross figures are summed, win rate comes from the summed
// counts, profit factor from the summed gross figures (same sentinel rule),
// largest win/loss are the extremes across days, instruments are the union.
type PeriodRollupService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// IsWeekEnd reports whether the UTC day of t is a Sunday (week-ending day).
func IsWeekEnd(t time.Time) bool {
	return UTCDay(t).Weekday() == time.Sunday
}

// IsMonthEnd reports whether the UTC day of t is the last day of its month.
func IsMonthEnd(t time.Time) bool {
	return UTCDay(t).AddDate(0, 0, 1).Day() == 1
}

// RollupWeek stores the weekly summary for the 7 days ending on weekEnd
// (a Sunday). period_start is the preceding Monday.
func (s *PeriodRollupService) RollupWeek(ctx context.Context, account int64, weekEnd time.Time) (*models.PeriodPerformance, error) {
	end := UTCDay(weekEnd)
	if end.Weekday() != time.Sunday {
		return nil, fmt.Errorf("week end %s is not a Sunday", end.Format("2006-01-02"))
	}
	start := end.AddDate(0, 0, -6)
	return s.rollup(ctx, account, models.PeriodTypeWeekly, start, end)
}

// RollupMonth stores the monthly summary for the calendar month ending on
// monthEnd. period_start is the first of the month.
func (s *PeriodRollupService) RollupMonth(ctx context.Context, account int64, monthEnd time.Time) (*models.PeriodPerformance, error) {
	end := UTCDay(monthEnd)
	if !IsMonthEnd(end) {
		return nil, fmt.Errorf("%s is not the last day of its month", end.Format("2006-01-02"))
	}
	start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	return s.rollup(ctx, account, models.PeriodTypeMonthly, start, end)
}

func (s *PeriodRollupService) rollup(ctx context.Context, account int64, periodType string, start, end time.Time) (*models.PeriodPerformance, error) {
	if s == nil || s.Repo == nil {
		return nil, fmt.Errorf("period rollup service not configured")
	}
	after := end.AddDate(0, 0, 1)
	dailies, err := s.Repo.ListDailyPerformance(ctx, repository.ListDailyPerformanceParams{
		Accounts: []int64{account},
		From:     &start,
		To:       &after,
	})
	if err != nil {
		return nil, fmt.Errorf("list daily performance: %w", err)
	}
	if len(dailies) == 0 {
		// Nothing to roll up; no period row is written, so "never synced" stays
		// distinguishable from "a week of no_trading days".
		return nil, nil
	}

	rollup := aggregateDailies(account, periodType, start, end, dailies)
	rollup.CalculatedAt = time.Now().UTC()

	if err := s.Repo.UpsertPeriodPerformance(ctx, rollup); err != nil {
		return nil, fmt.Errorf("upsert period performance: %w", err)
	}

	if s.Logger != nil {
		s.Logger.Info("period rollup stored",
			zap.Int64("account", account),
			zap.String("period_type", periodType),
			zap.Time("period_start", start),
			zap.Int("trading_days", rollup.TradingDays),
		)
	}
	return rollup, nil
}

func aggregateDailies(account int64, periodType string, start, end time.Time, dailies []models.DailyPerformance) *models.PeriodPerformance {
	rollup := &models.PeriodPerformance{
		PeriodType:  periodType,
		PeriodStart: start,
		PeriodEnd:   end,
		Account:     account,
	}

	var grossProfit, grossLoss decimal.Decimal
	var largestWin, largestLoss decimal.Decimal
	instruments := map[string]struct{}{}
	for i := range dailies {
		d := &dailies[i]
		rollup.TotalTrades += d.TotalTrades
		rollup.WinningTrades += d.WinningTrades
		rollup.LosingTrades += d.LosingTrades
		rollup.BreakevenTrades += d.BreakevenTrades
		grossProfit = grossProfit.Add(d.GrossProfit)
		grossLoss = grossLoss.Add(d.GrossLoss)
		if d.LargestWin.GreaterThan(largestWin) {
			largestWin = d.LargestWin
		}
		if d.LargestLoss.LessThan(largestLoss) {
			largestLoss = d.LargestLoss
		}
		if d.TotalTrades > 0 {
			rollup.TradingDays++
		}
		for _, sym := range instrumentsFromJSON(d.InstrumentsTraded) {
			instruments[sym] = struct{}{}
		}
	}

	rollup.GrossProfit = grossProfit
	rollup.GrossLoss = grossLoss
	rollup.TotalPnL = grossProfit.Add(grossLoss)
	rollup.WinRate = winRate(rollup.WinningTrades, rollup.TotalTrades)
	rollup.ProfitFactor = profitFactor(grossProfit, grossLoss)
	rollup.LargestWin = largestWin
	rollup.LargestLoss = largestLoss
	rollup.InstrumentsTraded = instrumentsJSON(instruments)

	switch {
	case rollup.TotalTrades == 0:
		rollup.Status = models.DayStatusNoTrading
	case rollup.TotalPnL.IsPositive():
		rollup.Status = models.DayStatusProfitable
	case rollup.TotalPnL.IsNegative():
		rollup.Status = models.DayStatusLoss
	default:
		rollup.Status = models.DayStatusBreakeven
	}
	return rollup
}

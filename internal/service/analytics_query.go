package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/repository"
)

// AnalyticsOverview aggregates daily summaries for a set of accounts over a
// trailing window into dashboard-ready totals. Fields are zero-valued, never
// null, when the window holds no data.
type AnalyticsOverview struct {
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	Days        int     `json:"days"`
	Accounts    []int64 `json:"accounts"`
	TradingDays int     `json:"trading_days"`

	TotalTrades     int `json:"total_trades"`
	WinningTrades   int `json:"winning_trades"`
	LosingTrades    int `json:"losing_trades"`
	BreakevenTrades int `json:"breakeven_trades"`

	TotalPnL    decimal.Decimal `json:"total_pnl"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	GrossLoss   decimal.Decimal `json:"gross_loss"`

	WinRate      decimal.Decimal `json:"win_rate"`
	ProfitFactor decimal.Decimal `json:"profit_factor"`
	AvgTrade     decimal.Decimal `json:"avg_trade"`
	AvgWin       decimal.Decimal `json:"avg_win"`
	AvgLoss      decimal.Decimal `json:"avg_loss"`

	LargestWin  decimal.Decimal `json:"largest_win"`
	LargestLoss decimal.Decimal `json:"largest_loss"`

	LastSync time.Time `json:"last_sync"`
}

type AnalyticsQueryService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// GetAnalyticsOverview reads the accounts' daily summaries over the trailing
// days window (UTC day granularity) and re-derives the aggregate ratios from
// the summed fields.
func (s *AnalyticsQueryService) GetAnalyticsOverview(ctx context.Context, accounts []int64, days int) (AnalyticsOverview, error) {
	if days <= 0 {
		days = 30
	}
	now := time.Now().UTC()
	from := UTCDay(now.AddDate(0, 0, -days))

	overview := AnalyticsOverview{
		PeriodStart: from.Format(time.RFC3339),
		PeriodEnd:   now.Format(time.RFC3339),
		Days:        days,
		Accounts:    accounts,
		LastSync:    now,
	}
	if overview.Accounts == nil {
		overview.Accounts = []int64{}
	}
	if s == nil || s.Repo == nil {
		return overview, fmt.Errorf("analytics query service not configured")
	}

	dailies, err := s.Repo.ListDailyPerformance(ctx, repository.ListDailyPerformanceParams{
		Accounts: accounts,
		From:     &from,
		To:       &now,
	})
	if err != nil {
		return overview, fmt.Errorf("list daily performance: %w", err)
	}
	if len(dailies) == 0 {
		return overview, nil
	}

	var grossProfit, grossLoss decimal.Decimal
	var largestWin, largestLoss decimal.Decimal
	var lastSync time.Time
	for i := range dailies {
		d := &dailies[i]
		overview.TotalTrades += d.TotalTrades
		overview.WinningTrades += d.WinningTrades
		overview.LosingTrades += d.LosingTrades
		overview.BreakevenTrades += d.BreakevenTrades
		grossProfit = grossProfit.Add(d.GrossProfit)
		grossLoss = grossLoss.Add(d.GrossLoss)
		if d.LargestWin.GreaterThan(largestWin) {
			largestWin = d.LargestWin
		}
		if d.LargestLoss.LessThan(largestLoss) {
			largestLoss = d.LargestLoss
		}
		if d.TotalTrades > 0 {
			overview.TradingDays++
		}
		if d.CalculatedAt.After(lastSync) {
			lastSync = d.CalculatedAt
		}
	}

	overview.GrossProfit = grossProfit
	overview.GrossLoss = grossLoss
	overview.TotalPnL = grossProfit.Add(grossLoss)
	overview.WinRate = winRate(overview.WinningTrades, overview.TotalTrades)
	overview.ProfitFactor = profitFactor(grossProfit, grossLoss)
	overview.LargestWin = largestWin
	overview.LargestLoss = largestLoss
	if overview.TotalTrades > 0 {
		overview.AvgTrade = overview.TotalPnL.Div(decimal.NewFromInt(int64(overview.TotalTrades))).Round(2)
	}
	if overview.WinningTrades > 0 {
		overview.AvgWin = grossProfit.Div(decimal.NewFromInt(int64(overview.WinningTrades))).Round(2)
	}
	if overview.LosingTrades > 0 {
		overview.AvgLoss = grossLoss.Div(decimal.NewFromInt(int64(overview.LosingTrades))).Round(2)
	}
	if !lastSync.IsZero() {
		overview.LastSync = lastSync
	}
	return overview, nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/models"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/repository"
)

// profitFactorCap is the sentinel stored when gross loss is exactly zero and
// gross profit is positive. Callers downstream rely on this exact value, so it
// must not be replaced with a true infinity or any other cap.
var profitFactorCap = decimal.NewFromFloat(999.99)

type DailyPerformanceService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// Calculate reads the account's trades closed on the UTC day of targetDate,
// derives the daily statistics and stores them as the single summary for
// (account, date). A day without trades still yields a persisted no_trading
// summary.
func (s *DailyPerformanceService) Calculate(ctx context.Context, account int64, targetDate time.Time) (*models.DailyPerformance, error) {
	if s == nil || s.Repo == nil {
		return nil, fmt.Errorf("daily performance service not configured")
	}
	dayStart := UTCDay(targetDate)
	dayEnd := dayStart.AddDate(0, 0, 1)

	trades, err := s.Repo.ListTradesByCloseTime(ctx, account, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}

	summary := buildDailySummary(account, dayStart, trades)
	summary.CalculatedAt = time.Now().UTC()

	if err := s.Repo.UpsertDailyPerformance(ctx, summary); err != nil {
		return nil, fmt.Errorf("upsert daily performance: %w", err)
	}

	if s.Logger != nil {
		s.Logger.Info("daily performance stored",
			zap.Int64("account", account),
			zap.Time("date", dayStart),
			zap.Int("trades", summary.TotalTrades),
			zap.String("status", summary.Status),
		)
	}
	return summary, nil
}

func buildDailySummary(account int64, day time.Time, trades []models.Trade) *models.DailyPerformance {
	summary := &models.DailyPerformance{
		Date:              day,
		Account:           account,
		Status:            models.DayStatusNoTrading,
		InstrumentsTraded: emptyInstruments(),
	}
	if len(trades) == 0 {
		return summary
	}

	var wins, losses, breakevens int
	var grossProfit, grossLoss decimal.Decimal
	var largestWin, largestLoss decimal.Decimal
	instruments := map[string]struct{}{}
	for i := range trades {
		p := trades[i].Profit
		switch {
		case p.IsPositive():
			wins++
			grossProfit = grossProfit.Add(p)
			if p.GreaterThan(largestWin) {
				largestWin = p
			}
		case p.IsNegative():
			losses++
			grossLoss = grossLoss.Add(p)
			if p.LessThan(largestLoss) {
				largestLoss = p
			}
		default:
			breakevens++
		}
		if trades[i].Symbol != "" {
			instruments[trades[i].Symbol] = struct{}{}
		}
	}

	total := len(trades)
	totalPnL := grossProfit.Add(grossLoss)

	summary.TotalTrades = total
	summary.WinningTrades = wins
	summary.LosingTrades = losses
	summary.BreakevenTrades = breakevens
	summary.TotalPnL = totalPnL
	summary.GrossProfit = grossProfit
	summary.GrossLoss = grossLoss
	summary.WinRate = winRate(wins, total)
	summary.ProfitFactor = profitFactor(grossProfit, grossLoss)
	summary.LargestWin = largestWin
	summary.LargestLoss = largestLoss
	if wins > 0 {
		summary.AvgWin = grossProfit.Div(decimal.NewFromInt(int64(wins))).Round(2)
	}
	if losses > 0 {
		summary.AvgLoss = grossLoss.Div(decimal.NewFromInt(int64(losses))).Round(2)
	}
	summary.InstrumentsTraded = instrumentsJSON(instruments)

	switch {
	case totalPnL.IsPositive():
		summary.Status = models.DayStatusProfitable
	case totalPnL.IsNegative():
		summary.Status = models.DayStatusLoss
	default:
		summary.Status = models.DayStatusBreakeven
	}
	return summary
}

func winRate(wins, total int) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(wins)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
}

// profitFactor is |gross_profit / gross_loss|, with the 999.99 sentinel when
// there are profits but no losses at all.
func profitFactor(grossProfit, grossLoss decimal.Decimal) decimal.Decimal {
	if grossLoss.IsZero() {
		if grossProfit.IsPositive() {
			return profitFactorCap
		}
		return decimal.Zero
	}
	return grossProfit.Div(grossLoss).Abs().Round(2)
}

func instrumentsJSON(set map[string]struct{}) datatypes.JSON {
	symbols := make([]string, 0, len(set))
	for s := range set {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	raw, err := json.Marshal(symbols)
	if err != nil {
		return emptyInstruments()
	}
	return datatypes.JSON(raw)
}

func emptyInstruments() datatypes.JSON {
	return datatypes.JSON([]byte("[]"))
}

func instrumentsFromJSON(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var symbols []string
	if err := json.Unmarshal(raw, &symbols); err != nil {
		return nil
	}
	return symbols
}

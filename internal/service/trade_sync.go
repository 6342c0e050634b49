package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/client/mt5"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/models"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/repository"
)

// TradeSource serves closed trades for an account over [start, end). The MT5
// bridge client implements it in production; tests use deterministic fakes.
type TradeSource interface {
	FetchClosedTrades(ctx context.Context, account int64, start, end time.Time) ([]mt5.RawTrade, error)
}

type TradeSyncService struct {
	Repo   repository.Repository
	Source TradeSource
	Logger *zap.Logger
}

// Sync fetches the account's trades closed on the UTC day of targetDate and
// upserts them keyed by (ticket, account). Re-running for the same day
// overwrites the same rows. The returned slice is what was fetched, not what
// is stored.
func (s *TradeSyncService) Sync(ctx context.Context, account int64, targetDate time.Time) ([]models.Trade, error) {
	if s == nil || s.Repo == nil || s.Source == nil {
		return nil, fmt.Errorf("trade sync service not configured")
	}
	dayStart := UTCDay(targetDate)
	dayEnd := dayStart.AddDate(0, 0, 1)

	raw, err := s.Source.FetchClosedTrades(ctx, account, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("fetch closed trades: %w", err)
	}

	trades := make([]models.Trade, 0, len(raw))
	skipped := 0
	for i := range raw {
		trade, ok := mapRawTrade(raw[i], account)
		if !ok {
			skipped++
			continue
		}
		trades = append(trades, trade)
	}
	if skipped > 0 && s.Logger != nil {
		s.Logger.Debug("skipped non-market deals",
			zap.Int64("account", account),
			zap.Int("skipped", skipped),
		)
	}

	if err := s.Repo.BulkUpsertTrades(ctx, trades); err != nil {
		return nil, fmt.Errorf("upsert trades: %w", err)
	}

	if s.Logger != nil {
		s.Logger.Info("trade sync ok",
			zap.Int64("account", account),
			zap.Time("date", dayStart),
			zap.Int("trades", len(trades)),
		)
	}
	return trades, nil
}

// mapRawTrade converts a bridge deal into the canonical trade shape. Deal
// types other than market buy (0) and sell (1) are balance operations and are
// not trades.
func mapRawTrade(raw mt5.RawTrade, account int64) (models.Trade, bool) {
	var side string
	switch raw.Type {
	case 0:
		side = models.TradeSideBuy
	case 1:
		side = models.TradeSideSell
	default:
		return models.Trade{}, false
	}

	swap := decimal.Zero
	if raw.Swap != nil {
		swap = decimal.NewFromFloat(*raw.Swap)
	}
	comment := ""
	if raw.Comment != nil {
		comment = *raw.Comment
	}

	return models.Trade{
		Ticket:     raw.Ticket,
		Account:    account,
		Symbol:     raw.Symbol,
		Side:       side,
		Volume:     decimal.NewFromFloat(raw.Volume),
		OpenPrice:  decimal.NewFromFloat(raw.PriceOpen),
		ClosePrice: decimal.NewFromFloat(raw.PriceClose),
		OpenTime:   time.Unix(raw.TimeOpen, 0).UTC(),
		CloseTime:  time.Unix(raw.TimeClose, 0).UTC(),
		Profit:     decimal.NewFromFloat(raw.Profit),
		Commission: decimal.NewFromFloat(raw.Commission),
		Swap:       swap,
		Comment:    comment,
	}, true
}

// UTCDay truncates t to its UTC day boundary.
func UTCDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/client/mt5"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestSync_MapsRawTrades(t *testing.T) {
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	openAt := day.Add(2 * time.Hour)
	closeAt := day.Add(5 * time.Hour)
	comment := "tp hit"

	repo := newStubRepo()
	source := &fakeSource{trades: map[int64][]mt5.RawTrade{
		886557: {
			{
				Ticket: 1001, Symbol: "XAUUSD", Type: 0, Volume: 0.5,
				PriceOpen: 2650.10, PriceClose: 2655.60,
				TimeOpen: openAt.Unix(), TimeClose: closeAt.Unix(),
				Profit: 275, Commission: -3.5, Swap: floatPtr(-1.2), Comment: &comment,
			},
			{
				Ticket: 1002, Symbol: "EURUSD", Type: 1, Volume: 1,
				PriceOpen: 1.0410, PriceClose: 1.0395,
				TimeOpen: openAt.Unix(), TimeClose: closeAt.Unix(),
				Profit: 150, Commission: -7,
			},
			// Balance operation, not a market deal: must be skipped.
			{Ticket: 1003, Type: 2, Profit: 5000, TimeClose: closeAt.Unix()},
		},
	}}
	svc := &TradeSyncService{Repo: repo, Source: source, Logger: zap.NewNop()}

	trades, err := svc.Sync(context.Background(), 886557, day.Add(13*time.Hour))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("trades=%d want 2", len(trades))
	}
	if len(repo.trades) != 2 {
		t.Fatalf("stored=%d want 2", len(repo.trades))
	}

	buy := repo.trades[tradeKey(1001, 886557)]
	if buy.Side != "BUY" {
		t.Fatalf("side=%q want BUY", buy.Side)
	}
	if !buy.CloseTime.Equal(closeAt) {
		t.Fatalf("close_time=%v want %v", buy.CloseTime, closeAt)
	}
	if !buy.Swap.Equal(decimal.NewFromFloat(-1.2)) {
		t.Fatalf("swap=%s want -1.2", buy.Swap)
	}
	if buy.Comment != "tp hit" {
		t.Fatalf("comment=%q", buy.Comment)
	}

	sell := repo.trades[tradeKey(1002, 886557)]
	if sell.Side != "SELL" {
		t.Fatalf("side=%q want SELL", sell.Side)
	}
	if !sell.Swap.IsZero() {
		t.Fatalf("swap=%s want 0", sell.Swap)
	}
}

func TestSync_Idempotent(t *testing.T) {
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	repo := newStubRepo()
	source := &fakeSource{trades: map[int64][]mt5.RawTrade{
		886557: {
			{Ticket: 1001, Symbol: "XAUUSD", Type: 0, Profit: 100, TimeClose: day.Add(time.Hour).Unix()},
			{Ticket: 1002, Symbol: "XAUUSD", Type: 1, Profit: -40, TimeClose: day.Add(2 * time.Hour).Unix()},
		},
	}}
	svc := &TradeSyncService{Repo: repo, Source: source, Logger: zap.NewNop()}

	for i := 0; i < 3; i++ {
		if _, err := svc.Sync(context.Background(), 886557, day); err != nil {
			t.Fatalf("run %d: err=%v", i, err)
		}
	}
	if len(repo.trades) != 2 {
		t.Fatalf("stored=%d want 2 after repeated runs", len(repo.trades))
	}
	if source.calls != 3 {
		t.Fatalf("calls=%d want 3", source.calls)
	}
}

func TestSync_SourceError(t *testing.T) {
	repo := newStubRepo()
	sourceErr := errors.New("bridge unreachable")
	source := &fakeSource{errs: map[int64]error{886557: sourceErr}}
	svc := &TradeSyncService{Repo: repo, Source: source, Logger: zap.NewNop()}

	_, err := svc.Sync(context.Background(), 886557, time.Now())
	if !errors.Is(err, sourceErr) {
		t.Fatalf("err=%v want wrapped %v", err, sourceErr)
	}
	if len(repo.trades) != 0 {
		t.Fatalf("stored=%d want 0", len(repo.trades))
	}
}

func TestUTCDay(t *testing.T) {
	in := time.Date(2025, 1, 10, 22, 45, 9, 12, time.FixedZone("CET", 3600))
	got := UTCDay(in)
	want := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	DayStatusNoTrading  = "no_trading"
	DayStatusProfitable = "profitable"
	DayStatusLoss       = "loss"
	DayStatusBreakeven  = "breakeven"
)

// DailyPerformance is one account's aggregate for one UTC calendar day.
// A zero-activity day is stored too (status no_trading), so "no trading
// happened" stays distinguishable from "data missing".
type DailyPerformance struct {
	ID      uint64    `gorm:"primaryKey;autoIncrement"`
	Date    time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_date_account;index"`
	Account int64     `gorm:"not null;uniqueIndex:idx_daily_date_account;index"`

	TotalTrades     int `gorm:"not null;default:0"`
	WinningTrades   int `gorm:"not null;default:0"`
	LosingTrades    int `gorm:"not null;default:0"`
	BreakevenTrades int `gorm:"not null;default:0"`

	TotalPnL    decimal.Decimal `gorm:"column:total_pnl;type:numeric(30,10);not null;default:0"`
	GrossProfit decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	GrossLoss   decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`

	WinRate      decimal.Decimal `gorm:"type:numeric(20,10);not null;default:0"`
	ProfitFactor decimal.Decimal `gorm:"type:numeric(20,10);not null;default:0"`

	LargestWin  decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	LargestLoss decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	AvgWin      decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	AvgLoss     decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`

	InstrumentsTraded datatypes.JSON `gorm:"type:jsonb"`

	Status string `gorm:"type:varchar(12);not null;index"`

	CalculatedAt time.Time `gorm:"type:timestamptz;not null"`
	CreatedAt    time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (DailyPerformance) TableName() string {
	return "daily_performance"
}

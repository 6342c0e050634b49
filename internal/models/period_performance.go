package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	PeriodTypeWeekly  = "weekly"
	PeriodTypeMonthly = "monthly"
)

// PeriodPerformance is a weekly or monthly rollup of daily summaries for one
// account, keyed by (period_type, period_start, account).
type PeriodPerformance struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	PeriodType  string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_period_type_start_account"`
	PeriodStart time.Time `gorm:"type:date;not null;uniqueIndex:idx_period_type_start_account;index"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`
	Account     int64     `gorm:"not null;uniqueIndex:idx_period_type_start_account;index"`

	TradingDays int `gorm:"not null;default:0"`

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

	InstrumentsTraded datatypes.JSON `gorm:"type:jsonb"`

	Status string `gorm:"type:varchar(12);not null"`

	CalculatedAt time.Time `gorm:"type:timestamptz;not null"`
	CreatedAt    time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (PeriodPerformance) TableName() string {
	return "period_performance"
}

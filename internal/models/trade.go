package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TradeSideBuy  = "BUY"
	TradeSideSell = "SELL"
)

// Trade is one closed position synced from the MT5 bridge.
// (ticket, account) is the natural key: re-running a sync for the same day
// overwrites rather than duplicates.
type Trade struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement"`
	Ticket  int64  `gorm:"not null;uniqueIndex:idx_trades_ticket_account"`
	Account int64  `gorm:"not null;uniqueIndex:idx_trades_ticket_account;index:idx_trades_account_close,priority:1"`

	Symbol string `gorm:"type:varchar(30);not null"`
	Side   string `gorm:"type:varchar(4);not null"`

	Volume     decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	OpenPrice  decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0"`
	ClosePrice decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0"`

	OpenTime  time.Time `gorm:"type:timestamptz;not null"`
	CloseTime time.Time `gorm:"type:timestamptz;not null;index:idx_trades_account_close,priority:2,sort:desc"`

	Profit     decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	Commission decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	Swap       decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`

	Comment string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Trade) TableName() string {
	return "trades"
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Known fund codes.
const (
	FundCore      = "CORE"
	FundBalance   = "BALANCE"
	FundDynamic   = "DYNAMIC"
	FundUnlimited = "UNLIMITED"
)

// Account is an allocation record for one sub-account of a fund. Balance is
// the account's invested principal baseline and TruePnL its net profit after
// profit withdrawals. These rows are maintained by the surrounding investment
// system; the analytics engine only reads them.
type Account struct {
	AccountID int64  `gorm:"primaryKey"`
	FundCode  string `gorm:"type:varchar(20);not null;index"`

	Balance           decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	Equity            decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`
	TruePnL           decimal.Decimal `gorm:"column:true_pnl;type:numeric(30,10);not null;default:0"`
	ProfitWithdrawals decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0"`

	ManagerName string `gorm:"type:varchar(100)"`
	Broker      string `gorm:"type:varchar(100)"`

	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Account) TableName() string {
	return "accounts"
}

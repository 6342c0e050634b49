package models

import (
	"time"

	"gorm.io/datatypes"
)

// SyncRun is the persisted audit record of one daily sync invocation.
type SyncRun struct {
	ID       uint64    `gorm:"primaryKey;autoIncrement"`
	SyncDate time.Time `gorm:"type:date;not null;index"`

	StartedAt       time.Time `gorm:"type:timestamptz;not null"`
	CompletedAt     time.Time `gorm:"type:timestamptz;not null"`
	DurationSeconds float64   `gorm:"type:numeric(12,3);not null;default:0"`

	AccountsProcessed     int `gorm:"not null;default:0"`
	TotalTradesSynced     int `gorm:"not null;default:0"`
	DailySummariesCreated int `gorm:"not null;default:0"`

	Errors  datatypes.JSON `gorm:"type:jsonb"`
	Success bool           `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (SyncRun) TableName() string {
	return "sync_runs"
}

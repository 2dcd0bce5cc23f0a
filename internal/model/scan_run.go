package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ScanStatusRunning   = "running"
	ScanStatusCompleted = "completed"
	ScanStatusPartial   = "partial"
	ScanStatusFailed    = "failed"
)

// ScanRun is the audit record of one scan execution.
type ScanRun struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Status        string         `gorm:"type:varchar(20);not null" json:"status"`
	Message       string         `gorm:"type:text" json:"message"`
	ScannedCount  int            `gorm:"not null;default:0" json:"scannedCount"`
	FailedSymbols datatypes.JSON `gorm:"type:jsonb" json:"failedSymbols"`
	StartedAt     time.Time      `gorm:"not null" json:"startedAt"`
	CompletedAt   *time.Time     `json:"completedAt"`
}

func (ScanRun) TableName() string {
	return "scan_runs"
}

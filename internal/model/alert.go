package model

import (
	"time"

	"candlescan/internal/dto"

	"github.com/shopspring/decimal"
)

// Alert is an immutable record of a signal transition. Rows are only ever
// appended by the scanner; the read flag belongs to the UI.
type Alert struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Symbol     string          `gorm:"type:text;not null;index" json:"symbol"`
	SignalType dto.SignalType  `gorm:"type:varchar(10);not null" json:"signalType"`
	Price      decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	Timestamp  time.Time       `gorm:"autoCreateTime;not null" json:"timestamp"`
	IsRead     bool            `gorm:"not null;default:false" json:"isRead"`
}

func (Alert) TableName() string {
	return "alerts"
}

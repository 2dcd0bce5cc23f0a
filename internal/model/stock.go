package model

import (
	"time"

	"candlescan/internal/dto"

	"github.com/shopspring/decimal"
)

// Stock is the registry row for one tracked symbol. The symbol is the
// immutable key; every scan overwrites the mutable fields.
type Stock struct {
	Symbol         string          `gorm:"primaryKey;type:text" json:"symbol"`
	Name           string          `gorm:"type:text;not null" json:"name"`
	LastPrice      decimal.Decimal `gorm:"type:numeric;not null" json:"lastPrice"`
	LastSignal     dto.SignalType  `gorm:"type:varchar(10);not null;default:NONE" json:"lastSignal"`
	LastSignalDate *time.Time      `json:"lastSignalDate"`
	SignalReason   *string         `gorm:"type:text" json:"signalReason"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Stock) TableName() string {
	return "stocks"
}

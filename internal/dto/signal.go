package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SignalType is the classification attached to a stock after evaluation.
type SignalType string

const (
	SignalBuy  SignalType = "BUY"
	SignalSell SignalType = "SELL"
	SignalNone SignalType = "NONE"
)

// Valid reports whether s is one of the known classifications.
func (s SignalType) Valid() bool {
	switch s {
	case SignalBuy, SignalSell, SignalNone:
		return true
	}
	return false
}

// MonthlyBar is one calendar month's candlestick for a traded instrument.
// Sequences are ordered oldest first.
type MonthlyBar struct {
	Open        decimal.Decimal `json:"open"`
	High        decimal.Decimal `json:"high"`
	Low         decimal.Decimal `json:"low"`
	Close       decimal.Decimal `json:"close"`
	Volume      int64           `json:"volume"`
	PeriodStart time.Time       `json:"period_start"`
}

// Green reports whether the month closed above its open.
func (b MonthlyBar) Green() bool {
	return b.Close.GreaterThan(b.Open)
}

// Red reports whether the month closed below its open.
// A doji (close == open) is neither green nor red.
func (b MonthlyBar) Red() bool {
	return b.Close.LessThan(b.Open)
}

// Signal is the pure output of the evaluator.
type Signal struct {
	Type   SignalType `json:"type"`
	Reason string     `json:"reason"`
}

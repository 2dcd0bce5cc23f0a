package strategy

import (
	"fmt"

	"candlescan/internal/dto"
)

// SignalEvaluator turns an ordered sequence of monthly bars into exactly one
// signal. Implementations must be pure: no I/O and no wall-clock reads.
type SignalEvaluator interface {
	Evaluate(bars []dto.MonthlyBar) dto.Signal
}

type monthlyEngulfing struct{}

// NewMonthlyEngulfingEvaluator classifies the monthly bullish/bearish
// engulfing pattern:
//
//	BUY  when the latest month closed green, the prior month closed red, and
//	     the latest close exceeds the prior month's open.
//	SELL for the mirror condition.
//	NONE otherwise, including doji months and sequences shorter than 2 bars.
func NewMonthlyEngulfingEvaluator() SignalEvaluator {
	return monthlyEngulfing{}
}

func (monthlyEngulfing) Evaluate(bars []dto.MonthlyBar) dto.Signal {
	if len(bars) < 2 {
		return dto.Signal{
			Type:   dto.SignalNone,
			Reason: "Insufficient data: need at least 2 monthly candles",
		}
	}

	curr := bars[len(bars)-1]
	prev := bars[len(bars)-2]

	switch {
	case curr.Green() && prev.Red() && curr.Close.GreaterThan(prev.Open):
		return dto.Signal{
			Type: dto.SignalBuy,
			Reason: fmt.Sprintf(
				"Bullish: Monthly Close (%s) > Open (%s). Price has engulfed previous Red month's opening.",
				curr.Close.StringFixed(2), prev.Open.StringFixed(2)),
		}
	case curr.Red() && prev.Green() && curr.Close.LessThan(prev.Open):
		return dto.Signal{
			Type: dto.SignalSell,
			Reason: fmt.Sprintf(
				"Bearish: Monthly Close (%s) < Open (%s). Price has engulfed previous Green month's opening.",
				curr.Close.StringFixed(2), prev.Open.StringFixed(2)),
		}
	}

	return dto.Signal{Type: dto.SignalNone, Reason: "No pattern confirmed"}
}

package calculator

import (
	"fmt"
	"math"

	"StockBoard/internal/model"
)

// PeriodRange scans bars and returns the highest high and lowest low.
func PeriodRange(bars []model.OHLCV) (high, low float64, err error) {
	if err := requireBars(len(bars)); err != nil {
		return 0, 0, err
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, nil
}

// ValidateBars checks the candlestick invariants low <= min(open, close),
// high >= max(open, close) and volume >= 0. It reports the first offending bar.
func ValidateBars(bars []model.OHLCV) error {
	for i, b := range bars {
		if b.Low > math.Min(b.Open, b.Close) {
			return fmt.Errorf("%w: bar %d (%s) low %.2f above body", ErrInvalidArgument, i, b.Date, b.Low)
		}
		if b.High < math.Max(b.Open, b.Close) {
			return fmt.Errorf("%w: bar %d (%s) high %.2f below body", ErrInvalidArgument, i, b.Date, b.High)
		}
		if b.Volume < 0 {
			return fmt.Errorf("%w: bar %d (%s) negative volume", ErrInvalidArgument, i, b.Date)
		}
	}
	return nil
}

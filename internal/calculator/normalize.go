package calculator

import (
	"fmt"

	"StockBoard/internal/model"
)

// NormalizeToPercent rebases closing prices to percentage deviations from reference.
func NormalizeToPercent(bars []model.OHLCV, reference float64) ([]float64, error) {
	if err := requireBars(len(bars)); err != nil {
		return nil, err
	}
	if reference == 0 {
		return nil, fmt.Errorf("normalize: %w", ErrDivisionByZero)
	}
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = Round2((b.Close - reference) / reference * 100)
	}
	return out, nil
}

// Rebase normalizes bars against the close of the first bar.
func Rebase(bars []model.OHLCV) ([]float64, error) {
	if err := requireBars(len(bars)); err != nil {
		return nil, err
	}
	return NormalizeToPercent(bars, bars[0].Close)
}

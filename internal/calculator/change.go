package calculator

import (
	"fmt"

	"StockBoard/internal/model"
)

// Extremes holds the largest single-day gain and loss of a bar sequence, in percent.
type Extremes struct {
	MaxRise float64 `json:"maxRise"`
	MaxFall float64 `json:"maxFall"`
}

// DayChangeExtremes computes close-to-close percentage changes over adjacent bars
// and returns the largest rise and the deepest fall. Both start at zero, so a
// sequence without losses reports MaxFall 0.
func DayChangeExtremes(bars []model.OHLCV) (Extremes, error) {
	if err := requireBars(len(bars)); err != nil {
		return Extremes{}, err
	}
	var ext Extremes
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev == 0 {
			return Extremes{}, fmt.Errorf("day change at %s: %w", bars[i].Date, ErrDivisionByZero)
		}
		change := (bars[i].Close - prev) / prev * 100
		if change > ext.MaxRise {
			ext.MaxRise = change
		}
		if change < ext.MaxFall {
			ext.MaxFall = change
		}
	}
	ext.MaxRise = Round2(ext.MaxRise)
	ext.MaxFall = Round2(ext.MaxFall)
	return ext, nil
}

// PeriodChange returns the percentage change from the first to the last close.
func PeriodChange(bars []model.OHLCV) (float64, error) {
	if err := requireBars(len(bars)); err != nil {
		return 0, err
	}
	first := bars[0].Close
	if first == 0 {
		return 0, fmt.Errorf("period change: %w", ErrDivisionByZero)
	}
	return Round2((bars[len(bars)-1].Close - first) / first * 100), nil
}

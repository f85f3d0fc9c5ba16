package calculator

import (
	"encoding/json"
	"fmt"
	"strconv"

	"StockBoard/internal/model"
)

// DefaultWindows are the moving-average windows drawn on the candlestick chart.
var DefaultWindows = []int{5, 10, 20}

// MAPoint is one moving-average output. Points without a full window are not Valid
// and encode as the chart sentinel "-".
type MAPoint struct {
	Value float64
	Valid bool
}

// MarshalJSON writes the value with two decimals, or "-" when not Valid.
func (p MAPoint) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte(`"-"`), nil
	}
	return []byte(strconv.FormatFloat(p.Value, 'f', 2, 64)), nil
}

// UnmarshalJSON accepts a number, "-" or null.
func (p *MAPoint) UnmarshalJSON(data []byte) error {
	if string(data) == `"-"` || string(data) == "null" {
		*p = MAPoint{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = MAPoint{Value: v, Valid: true}
	return nil
}

// String formats the point like its JSON form, without quotes.
func (p MAPoint) String() string {
	if !p.Valid {
		return "-"
	}
	return strconv.FormatFloat(p.Value, 'f', 2, 64)
}

// MovingAverage computes the simple moving average of closing prices over window.
// The result has one point per bar; the first window-1 points are sentinels.
func MovingAverage(bars []model.OHLCV, window int) ([]MAPoint, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %d", ErrInvalidArgument, window)
	}
	if err := requireBars(len(bars)); err != nil {
		return nil, err
	}

	out := make([]MAPoint, len(bars))
	for i := window - 1; i < len(bars); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += bars[j].Close
		}
		out[i] = MAPoint{Value: Round2(sum / float64(window)), Valid: true}
	}
	return out, nil
}

// MovingAverages computes several windows independently over the same bars.
func MovingAverages(bars []model.OHLCV, windows ...int) (map[int][]MAPoint, error) {
	if len(windows) == 0 {
		windows = DefaultWindows
	}
	lines := make(map[int][]MAPoint, len(windows))
	for _, w := range windows {
		line, err := MovingAverage(bars, w)
		if err != nil {
			return nil, fmt.Errorf("MA%d: %w", w, err)
		}
		lines[w] = line
	}
	return lines, nil
}

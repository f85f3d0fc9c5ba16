package calculator

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockBoard/internal/model"
)

func barsFromCloses(closes ...float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Date:   "2025-05-" + string(rune('0'+(i+10)/10)) + string(rune('0'+(i+10)%10)),
			Open:   c,
			Close:  c,
			High:   c + 1,
			Low:    c - 1,
			Volume: 1000,
		}
	}
	return bars
}

func TestMovingAverage_Scenario(t *testing.T) {
	bars := barsFromCloses(10, 12, 11, 13, 14)
	ma, err := MovingAverage(bars, 3)
	require.NoError(t, err)
	require.Len(t, ma, 5)

	assert.False(t, ma[0].Valid)
	assert.False(t, ma[1].Valid)
	assert.Equal(t, MAPoint{Value: 11.00, Valid: true}, ma[2])
	assert.Equal(t, MAPoint{Value: 12.00, Valid: true}, ma[3])
	assert.Equal(t, MAPoint{Value: 12.67, Valid: true}, ma[4])
}

func TestMovingAverage_MeanWithinTolerance(t *testing.T) {
	closes := []float64{101.23, 99.87, 100.45, 102.31, 98.76, 97.12, 103.9, 104.44, 100.01}
	bars := barsFromCloses(closes...)
	for w := 1; w <= len(closes); w++ {
		ma, err := MovingAverage(bars, w)
		require.NoError(t, err)
		require.Len(t, ma, len(bars))
		for i := range ma {
			if i < w-1 {
				assert.False(t, ma[i].Valid, "w=%d i=%d", w, i)
				continue
			}
			sum := 0.0
			for _, c := range closes[i-w+1 : i+1] {
				sum += c
			}
			assert.True(t, ma[i].Valid)
			assert.InDelta(t, sum/float64(w), ma[i].Value, 0.01, "w=%d i=%d", w, i)
		}
	}
}

func TestMovingAverage_EdgeCases(t *testing.T) {
	bars := barsFromCloses(10.123, 11.456)

	t.Run("window larger than input", func(t *testing.T) {
		ma, err := MovingAverage(bars, 5)
		require.NoError(t, err)
		require.Len(t, ma, 2)
		for _, p := range ma {
			assert.False(t, p.Valid)
		}
	})

	t.Run("window of one", func(t *testing.T) {
		ma, err := MovingAverage(bars, 1)
		require.NoError(t, err)
		assert.Equal(t, []MAPoint{{10.12, true}, {11.46, true}}, ma)
	})

	t.Run("invalid window", func(t *testing.T) {
		for _, w := range []int{0, -3} {
			_, err := MovingAverage(bars, w)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := MovingAverage(nil, 5)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestMovingAverages_IndependentAndNonMutating(t *testing.T) {
	bars := barsFromCloses(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21)
	before := make([]model.OHLCV, len(bars))
	copy(before, bars)

	lines, err := MovingAverages(bars)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	for _, w := range DefaultWindows {
		single, err := MovingAverage(bars, w)
		require.NoError(t, err)
		assert.Equal(t, single, lines[w])
	}
	assert.Equal(t, before, bars)

	_, err = MovingAverages(bars, 5, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMAPoint_JSON(t *testing.T) {
	data, err := json.Marshal([]MAPoint{{}, {Value: 12.5, Valid: true}})
	require.NoError(t, err)
	assert.Equal(t, `["-",12.50]`, string(data))

	var back []MAPoint
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []MAPoint{{}, {Value: 12.5, Valid: true}}, back)
}

func TestNormalizeToPercent(t *testing.T) {
	bars := barsFromCloses(100, 110, 95)
	got, err := NormalizeToPercent(bars, 100)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 10, -5}, got)

	rebased, err := Rebase(bars)
	require.NoError(t, err)
	assert.Equal(t, got, rebased)
	assert.Len(t, rebased, len(bars))
	assert.Equal(t, 0.0, rebased[0])
}

func TestNormalizeToPercent_Errors(t *testing.T) {
	_, err := NormalizeToPercent(barsFromCloses(1, 2), 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NormalizeToPercent(nil, 100)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.False(t, errors.Is(err, ErrDivisionByZero))

	_, err = Rebase(barsFromCloses(0, 5))
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestDayChangeExtremes(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   Extremes
	}{
		{"mixed", []float64{100, 105, 98, 108}, Extremes{MaxRise: 10.2, MaxFall: -6.67}},
		{"rise then fall", []float64{100, 105, 98}, Extremes{MaxRise: 5, MaxFall: -6.67}},
		{"only rises", []float64{10, 11, 12}, Extremes{MaxRise: 10, MaxFall: 0}},
		{"only falls", []float64{10, 9, 8}, Extremes{MaxRise: 0, MaxFall: -11.11}},
		{"single bar", []float64{42}, Extremes{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DayChangeExtremes(barsFromCloses(tt.closes...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DayChangeExtremes(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = DayChangeExtremes(barsFromCloses(5, 0, 3))
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestPeriodChangeAndRange(t *testing.T) {
	bars := barsFromCloses(100, 120, 90, 110)
	change, err := PeriodChange(bars)
	require.NoError(t, err)
	assert.Equal(t, 10.0, change)

	high, low, err := PeriodRange(bars)
	require.NoError(t, err)
	assert.Equal(t, 121.0, high)
	assert.Equal(t, 89.0, low)

	_, _, err = PeriodRange(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestValidateBars(t *testing.T) {
	require.NoError(t, ValidateBars(barsFromCloses(1, 2, 3)))

	bad := barsFromCloses(10, 11)
	bad[1].Low = 11.5
	assert.ErrorIs(t, ValidateBars(bad), ErrInvalidArgument)

	bad = barsFromCloses(10, 11)
	bad[0].High = 9
	assert.ErrorIs(t, ValidateBars(bad), ErrInvalidArgument)
}

func TestAnalytics_Idempotent(t *testing.T) {
	bars := barsFromCloses(12.3, 12.9, 11.8, 13.4, 13.1, 12.2)
	ma1, _ := MovingAverage(bars, 3)
	ma2, _ := MovingAverage(bars, 3)
	assert.Equal(t, ma1, ma2)

	n1, _ := Rebase(bars)
	n2, _ := Rebase(bars)
	assert.Equal(t, n1, n2)

	e1, _ := DayChangeExtremes(bars)
	e2, _ := DayChangeExtremes(bars)
	assert.Equal(t, e1, e2)
}

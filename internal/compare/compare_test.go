package compare

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockBoard/internal/calculator"
	"StockBoard/internal/model"
)

func series(code string, closes ...float64) model.Series {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{Date: fmt.Sprintf("2025-05-%02d", i+1), Open: c, Close: c, High: c, Low: c}
	}
	return model.Series{Code: code, Name: code, Bars: bars}
}

func TestSet_AddRemove(t *testing.T) {
	s, err := NewSet(DefaultCodes...)
	require.NoError(t, err)
	assert.Equal(t, []string{"sh000001", "sz399001"}, s.Codes())
	assert.Equal(t, Palette[0], s.Members()[0].Color)
	assert.Equal(t, Palette[1], s.Members()[1].Color)

	assert.ErrorIs(t, s.Add("sh000001"), ErrDuplicate)

	assert.True(t, s.Remove("sh000001"))
	assert.False(t, s.Remove("sh000001"))
	require.NoError(t, s.Add("sh600519"))
	// the freed first colour is reused
	assert.Equal(t, Member{Code: "sh600519", Color: Palette[0]}, s.Members()[1])
}

func TestSet_Capacity(t *testing.T) {
	var s Set
	for i := 0; i < MaxSelection; i++ {
		require.NoError(t, s.Add(fmt.Sprintf("c%d", i)))
	}
	assert.ErrorIs(t, s.Add("one-more"), ErrSetFull)
	assert.Equal(t, MaxSelection, s.Len())

	colors := map[string]bool{}
	for _, m := range s.Members() {
		colors[m.Color] = true
	}
	assert.Len(t, colors, MaxSelection)
}

func TestAnalyze_Percent(t *testing.T) {
	in := []model.Series{
		series("A", 100, 105, 98, 108),
		series("B", 50, 50, 50, 45),
		series("C", 20, 21, 22, 22),
	}
	r, err := Analyze(in, MethodPercent)
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-05-01", "2025-05-02", "2025-05-03", "2025-05-04"}, r.Dates)
	require.Len(t, r.Lines, 3)
	assert.Equal(t, "A", r.Lines[0].Code)
	assert.Equal(t, []float64{0, 5, -2, 8}, r.Lines[0].Values)

	var order []string
	for _, s := range r.Summaries {
		order = append(order, s.Code)
	}
	assert.Equal(t, []string{"C", "A", "B"}, order)
	assert.Equal(t, 10.0, r.Best.ChangePercent)
	assert.Equal(t, "B", r.Worst.Code)
	assert.Equal(t, -10.0, r.Worst.ChangePercent)
	assert.Equal(t, "down", r.Worst.Direction)

	a := r.Summaries[1]
	assert.InDelta(t, 10.2, a.MaxRise, 0.01)
	assert.InDelta(t, -6.67, a.MaxFall, 0.01)
	assert.Equal(t, 100.0, a.FirstPrice)
	assert.Equal(t, 108.0, a.LastPrice)

	assert.Equal(t, 2, r.RiseCount)
	assert.Equal(t, 1, r.FallCount)
	assert.InDelta(t, 2.67, r.AvgChange, 0.01)
}

func TestAnalyze_Price(t *testing.T) {
	r, err := Analyze([]model.Series{series("A", 10, 11)}, MethodPrice)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 11}, r.Lines[0].Values)
	assert.Equal(t, r.Best.Code, r.Worst.Code)
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name   string
		in     []model.Series
		method Method
	}{
		{"empty", nil, MethodPercent},
		{"length mismatch", []model.Series{series("A", 1, 2), series("B", 1)}, MethodPercent},
		{"unknown method", []model.Series{series("A", 1, 2)}, "log"},
		{"zero first close", []model.Series{series("A", 0, 2)}, MethodPercent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze(tt.in, tt.method)
			assert.ErrorIs(t, err, calculator.ErrInvalidArgument)
		})
	}

	shifted := series("B", 1, 2)
	shifted.Bars[1].Date = "2025-06-01"
	_, err := Analyze([]model.Series{series("A", 1, 2), shifted}, MethodPercent)
	assert.ErrorIs(t, err, calculator.ErrInvalidArgument)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("")
	require.NoError(t, err)
	assert.Equal(t, MethodPercent, m)
	m, err = ParseMethod("price")
	require.NoError(t, err)
	assert.Equal(t, MethodPrice, m)
	_, err = ParseMethod("volume")
	assert.ErrorIs(t, err, calculator.ErrInvalidArgument)
}

package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockBoard/internal/cache"
	"StockBoard/internal/calculator"
	"StockBoard/internal/compare"
	"StockBoard/internal/metrics"
)

func newTestCollector() *Collector {
	return NewCollector(newTestFetcher(9), cache.NewMemory(), metrics.New(), 0)
}

func TestCollector_KLine(t *testing.T) {
	c := newTestCollector()
	k, err := c.KLine(context.Background(), "sh600519", 30, nil)
	require.NoError(t, err)

	assert.Equal(t, "贵州茅台", k.Name)
	require.Len(t, k.Bars, 30)
	require.Len(t, k.MA, 3)
	for _, key := range []string{"ma5", "ma10", "ma20"} {
		require.Len(t, k.MA[key], 30, key)
	}
	assert.False(t, k.MA["ma20"][18].Valid)
	assert.True(t, k.MA["ma20"][19].Valid)
	assert.GreaterOrEqual(t, k.High, k.Low)
	assert.GreaterOrEqual(t, k.Extremes.MaxRise, 0.0)
	assert.LessOrEqual(t, k.Extremes.MaxFall, 0.0)
}

func TestCollector_KLineErrors(t *testing.T) {
	c := newTestCollector()
	ctx := context.Background()

	_, err := c.KLine(ctx, "zz000000", 30, nil)
	assert.ErrorIs(t, err, ErrUnknownInstrument)

	_, err = c.KLine(ctx, "sh600519", 30, []int{5, 0})
	assert.ErrorIs(t, err, calculator.ErrInvalidArgument)
}

func TestCollector_BarsCached(t *testing.T) {
	c := newTestCollector()
	ctx := context.Background()

	first, err := c.Bars(ctx, "sz000858", 7)
	require.NoError(t, err)
	second, err := c.Bars(ctx, "sz000858", 7)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := c.Bars(ctx, "sz000858", 8)
	require.NoError(t, err)
	assert.Len(t, other, 8)
}

func TestCollector_Compare(t *testing.T) {
	c := newTestCollector()
	set, err := compare.NewSet("sh000001", "sz399001", "sh600519")
	require.NoError(t, err)

	r, err := c.Compare(context.Background(), set, 7, compare.MethodPercent)
	require.NoError(t, err)
	require.Len(t, r.Lines, 3)
	assert.Len(t, r.Dates, 7)
	for _, l := range r.Lines {
		assert.Equal(t, 0.0, l.Values[0])
	}
	assert.Equal(t, compare.Palette[2], r.Lines[2].Color)
	assert.Equal(t, "上证指数", r.Lines[0].Name)
	assert.Equal(t, 3, r.RiseCount+r.FallCount+countFlat(r))

	bad, err := compare.NewSet("sh000001", "zz")
	require.NoError(t, err)
	_, err = c.Compare(context.Background(), bad, 7, compare.MethodPercent)
	assert.ErrorIs(t, err, ErrUnknownInstrument)
}

func countFlat(r *compare.Report) int {
	n := 0
	for _, s := range r.Summaries {
		if s.ChangePercent == 0 {
			n++
		}
	}
	return n
}

func TestCollector_Rank(t *testing.T) {
	c := newTestCollector()
	ctx := context.Background()

	up, err := c.Rank(ctx, calculator.RankUp)
	require.NoError(t, err)
	assert.Equal(t, "sh600519", up[0].Code)

	down, err := c.Rank(ctx, calculator.RankDown)
	require.NoError(t, err)
	assert.Equal(t, "sh600276", down[0].Code)
	assert.Equal(t, -0.87, down[0].ChangePercent)

	byTurnover, err := c.RankBy(ctx, calculator.KeyTurnoverRate, calculator.Asc)
	require.NoError(t, err)
	assert.Equal(t, "sh600519", byTurnover[0].Code)

	_, err = c.Rank(ctx, "sideways")
	assert.ErrorIs(t, err, calculator.ErrInvalidArgument)
}

func TestCollector_Snapshot(t *testing.T) {
	s, err := newTestCollector().Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, s.Indices, 3)
	assert.Len(t, s.Hot, 5)
	require.Len(t, s.TopGainers, 5)
	assert.Equal(t, "sh600519", s.TopGainers[0].Code)
}

package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"StockBoard/internal/calculator"
	"StockBoard/internal/collector"
	"StockBoard/internal/compare"
	"StockBoard/internal/model"
)

func TestFormatKLine(t *testing.T) {
	k := &collector.KLine{
		Code: "sh600519",
		Name: "贵州茅台",
		Bars: []model.OHLCV{
			{Date: "2025-05-19", Open: 10, Close: 11, High: 12, Low: 9, Volume: 1234567},
			{Date: "2025-05-20", Open: 11, Close: 12, High: 13, Low: 10, Volume: 1000},
		},
		MA: map[string][]calculator.MAPoint{
			"ma10": {{}, {}},
			"ma2":  {{}, {Value: 11.5, Valid: true}},
		},
	}
	out := FormatKLine(k)
	assert.Contains(t, out, "sh600519 贵州茅台")
	assert.Contains(t, out, "1,234,567")
	assert.Contains(t, out, "11.50")
	header := strings.Split(out, "\n")[3]
	assert.Less(t, strings.Index(header, "MA2"), strings.Index(header, "MA10"))
}

func TestFormatRank(t *testing.T) {
	out := FormatRank("up", []model.RankedEntry{
		{Code: "sh600519", Name: "贵州茅台", Price: 1856, ChangePercent: 5.43, ChangeAmount: 95.67, Volume: 125678, Amount: 233456.78, TurnoverRate: 1.23},
	})
	assert.True(t, strings.HasPrefix(out, "涨幅榜"))
	assert.Contains(t, out, "+5.43%")
	assert.Contains(t, out, "125,678")
	assert.Contains(t, out, "233,456.78")

	assert.True(t, strings.HasPrefix(FormatRank("changePercent desc", nil), "changePercent desc"))
}

func TestFormatCompare(t *testing.T) {
	best := compare.Summary{Code: "A", Name: "甲", ChangePercent: 8}
	worst := compare.Summary{Code: "B", Name: "乙", ChangePercent: -10}
	out := FormatCompare(&compare.Report{
		Dates:     []string{"2025-05-01", "2025-05-04"},
		Lines:     []compare.Line{{Code: "A"}, {Code: "B"}},
		Summaries: []compare.Summary{best, worst},
		Best:      &best,
		Worst:     &worst,
		AvgChange: -1,
		RiseCount: 1,
		FallCount: 1,
	})
	assert.Contains(t, out, "2025-05-01 ~ 2025-05-04")
	assert.Contains(t, out, "最佳: 甲 +8.00%")
	assert.Contains(t, out, "上涨 1 只 / 下跌 1 只")
}

func TestFormatSnapshot(t *testing.T) {
	out := FormatSnapshot(&collector.Snapshot{
		Time:    time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC),
		Indices: []model.Quote{{Instrument: model.Instrument{Code: "sh000001", Name: "上证指数"}, CurrentPrice: 3321.5, ChangePercent: -0.42}},
	})
	assert.Contains(t, out, "2025-05-20 10:00:00")
	assert.Contains(t, out, "-0.42%")
}
